package rest

import (
	"encoding/json"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/remote"
)

// Wire shapes follow the backend exactly; converters below map them onto
// the client models.

type authRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func sessionFromAuth(a authResponse) models.Session {
	return models.Session{
		User: models.User{
			Id:       a.Id,
			Username: a.Username,
			Email:    a.Email,
			Role:     a.Role,
		},
		Token: a.Token,
	}
}

type feedBlogDTO struct {
	Id        string `json:"id"`
	UserId    string `json:"userId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Image     string `json:"image"`
	LikeCount int    `json:"likeCount"`
	Comments  int    `json:"Comments"`
	Username  string `json:"username"`
	UserImage string `json:"userImage"`
	LikedByMe bool   `json:"likedByMe"`
	CreatedAt string `json:"createdAt"`
}

type feedResponse struct {
	Blogs      []feedBlogDTO `json:"blogs"`
	NextCursor string        `json:"nextCursor"`
	HasMore    bool          `json:"hasMore"`
}

func summaryFromDTO(d feedBlogDTO) models.BlogSummary {
	return models.BlogSummary{
		Id:        d.Id,
		UserId:    d.UserId,
		Title:     d.Title,
		Content:   d.Content,
		Image:     d.Image,
		Username:  d.Username,
		UserImage: d.UserImage,
		Likes:     d.LikeCount,
		Comments:  d.Comments,
		LikedByMe: d.LikedByMe,
		CreatedAt: d.CreatedAt,
	}
}

func feedPageFromResponse(r feedResponse) remote.FeedPage {
	page := remote.FeedPage{
		Blogs:   make([]models.BlogSummary, 0, len(r.Blogs)),
		Next:    remote.PageToken(r.NextCursor),
		HasMore: r.HasMore,
	}
	for _, d := range r.Blogs {
		page.Blogs = append(page.Blogs, summaryFromDTO(d))
	}
	return page
}

type blogDTO struct {
	Id        string   `json:"id"`
	UserId    string   `json:"userId"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Image     string   `json:"image"`
	Likes     int      `json:"likes"`
	Comments  int      `json:"comments"`
	Liked     bool     `json:"liked"`
	Editable  bool     `json:"editable"`
	Username  string   `json:"username"`
	UserImage string   `json:"userImage"`
	CreatedAt string   `json:"createdAt"`
}

func blogFromDTO(d blogDTO) models.Blog {
	return models.Blog{
		Id:        d.Id,
		UserId:    d.UserId,
		Title:     d.Title,
		Content:   d.Content,
		Tags:      d.Tags,
		Image:     d.Image,
		Username:  d.Username,
		UserImage: d.UserImage,
		Likes:     d.Likes,
		Comments:  d.Comments,
		LikedByMe: d.Liked,
		Editable:  d.Editable,
		CreatedAt: d.CreatedAt,
	}
}

// Comment ids arrive as numbers from this endpoint; keep them opaque strings
// on the client side.
type commentDTO struct {
	Id          json.Number `json:"id"`
	AuthorId    string      `json:"authorId"`
	Author      string      `json:"author"`
	AuthorImage string      `json:"authorImage"`
	Content     string      `json:"content"`
	CreatedAt   string      `json:"date"`
	Deletable   bool        `json:"deletable"`
}

func commentFromDTO(d commentDTO, blogId string) models.Comment {
	return models.Comment{
		Id:            d.Id.String(),
		BlogId:        blogId,
		AuthorId:      d.AuthorId,
		Author:        d.Author,
		AuthorImage:   d.AuthorImage,
		Content:       d.Content,
		CreatedAt:     d.CreatedAt,
		DeletableByMe: d.Deletable,
	}
}

type profileDTO struct {
	Username   string `json:"username"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
}

func profileFromDTO(d profileDTO) models.Profile {
	return models.Profile{
		Username:   d.Username,
		Bio:        d.Bio,
		ProfilePic: d.ProfilePic,
	}
}

type userInfoDTO struct {
	Id         string `json:"id"`
	Username   string `json:"username"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
	BlogCount  int    `json:"blogCount"`
}

func userInfoFromDTO(d userInfoDTO) models.UserInfo {
	return models.UserInfo{
		Id:         d.Id,
		Username:   d.Username,
		Bio:        d.Bio,
		ProfilePic: d.ProfilePic,
		BlogCount:  d.BlogCount,
	}
}

type createBlogPayload struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type updateBlogPayload struct {
	BlogId  string   `json:"blogId"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type createCommentRequest struct {
	BlogId  string `json:"blogId"`
	Content string `json:"content"`
}
