// Package rest implements remote.BlogAPI against the HTTP backend.
//
// Two http clients are held: anon for endpoints that work without a
// session, and authed, an oauth2 client whose transport pulls the bearer
// token from the session store on every request. Requests are paced
// through a shared client-side rate limiter.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/remote"
)

const (
	defaultPageSize   = 10
	requestsPerSecond = 10
	burstLimit        = 5
)

type RESTBlogAPI struct {
	baseURL  string
	anon     *http.Client
	authed   *http.Client
	limiter  *rate.Limiter
	pageSize int
	log      *zap.SugaredLogger
}

func NewRESTBlogAPI(baseURL string, tokens oauth2.TokenSource, pageSize int, log *zap.SugaredLogger) (*RESTBlogAPI, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, errors.New("base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &RESTBlogAPI{
		baseURL:  baseURL,
		anon:     &http.Client{},
		authed:   oauth2.NewClient(context.Background(), tokens),
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), burstLimit),
		pageSize: pageSize,
		log:      log,
	}, nil
}

func (api *RESTBlogAPI) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	var resp authResponse
	req := authRequest{Email: creds.Email, Password: creds.Password}
	if err := api.postJSON(ctx, api.anon, api.endpoint("/auth/login", nil), req, &resp); err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}
	return sessionFromAuth(resp), nil
}

func (api *RESTBlogAPI) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	var resp authResponse
	req := authRequest{Username: creds.Username, Email: creds.Email, Password: creds.Password}
	if err := api.postJSON(ctx, api.anon, api.endpoint("/auth/register", nil), req, &resp); err != nil {
		return models.Session{}, fmt.Errorf("register: %w", err)
	}
	return sessionFromAuth(resp), nil
}

func (api *RESTBlogAPI) Feed(ctx context.Context, cursor remote.PageToken, viewerId string) (remote.FeedPage, error) {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", string(cursor))
	}
	if viewerId != "" {
		q.Set("userId", viewerId)
	}

	var resp feedResponse
	if err := api.getJSON(ctx, api.anon, api.endpoint("/api/map/feed", q), &resp); err != nil {
		return remote.FeedPage{}, fmt.Errorf("fetch feed: %w", err)
	}
	return feedPageFromResponse(resp), nil
}

func (api *RESTBlogAPI) UserBlogs(ctx context.Context, userId string, cursor remote.PageToken) (remote.FeedPage, error) {
	q := url.Values{"userId": {userId}}
	if cursor != "" {
		q.Set("cursor", string(cursor))
	}

	var resp feedResponse
	if err := api.getJSON(ctx, api.anon, api.endpoint("/api/blog/getUserBlogs", q), &resp); err != nil {
		return remote.FeedPage{}, fmt.Errorf("fetch user blogs: %w", err)
	}
	return feedPageFromResponse(resp), nil
}

func (api *RESTBlogAPI) Blog(ctx context.Context, blogId string, viewerId string) (models.Blog, error) {
	q := url.Values{"blogId": {blogId}}
	if viewerId != "" {
		q.Set("userId", viewerId)
	}

	var resp blogDTO
	if err := api.getJSON(ctx, api.anon, api.endpoint("/api/blog/getBlog", q), &resp); err != nil {
		return models.Blog{}, fmt.Errorf("fetch blog %s: %w", blogId, err)
	}
	return blogFromDTO(resp), nil
}

// Comments is the one page-number endpoint in an otherwise cursor-based
// API. The zero-indexed page counter is folded into the opaque token here
// so callers see the same pagination contract everywhere.
func (api *RESTBlogAPI) Comments(ctx context.Context, blogId string, cursor remote.PageToken, viewerId string) (remote.CommentPage, error) {
	page := 0
	if cursor != "" {
		n, err := strconv.Atoi(string(cursor))
		if err != nil || n < 0 {
			return remote.CommentPage{}, fmt.Errorf("invalid comments page token %q", cursor)
		}
		page = n
	}

	q := url.Values{
		"blogId": {blogId},
		"page":   {strconv.Itoa(page)},
		"size":   {strconv.Itoa(api.pageSize)},
	}
	if viewerId != "" {
		q.Set("userId", viewerId)
	}

	var dtos []commentDTO
	if err := api.getJSON(ctx, api.anon, api.endpoint("/api/like&comment/get-comments", q), &dtos); err != nil {
		return remote.CommentPage{}, fmt.Errorf("fetch comments for blog %s: %w", blogId, err)
	}

	out := remote.CommentPage{Comments: make([]models.Comment, 0, len(dtos))}
	for _, d := range dtos {
		out.Comments = append(out.Comments, commentFromDTO(d, blogId))
	}
	// A short page is the only end-of-collection signal this endpoint gives.
	if len(dtos) == api.pageSize {
		out.Next = remote.PageToken(strconv.Itoa(page + 1))
		out.HasMore = true
	}
	return out, nil
}

func (api *RESTBlogAPI) Like(ctx context.Context, blogId string) error {
	q := url.Values{"blogId": {blogId}}
	if err := api.postJSON(ctx, api.authed, api.endpoint("/api/like&comment/like", q), nil, nil); err != nil {
		return fmt.Errorf("like blog %s: %w", blogId, err)
	}
	return nil
}

func (api *RESTBlogAPI) Unlike(ctx context.Context, blogId string) error {
	q := url.Values{"blogId": {blogId}}
	if err := api.postJSON(ctx, api.authed, api.endpoint("/api/like&comment/removeLike", q), nil, nil); err != nil {
		return fmt.Errorf("unlike blog %s: %w", blogId, err)
	}
	return nil
}

func (api *RESTBlogAPI) CreateComment(ctx context.Context, blogId string, content string) (models.Comment, error) {
	var resp commentDTO
	req := createCommentRequest{BlogId: blogId, Content: content}
	if err := api.postJSON(ctx, api.authed, api.endpoint("/api/like&comment/create", nil), req, &resp); err != nil {
		return models.Comment{}, fmt.Errorf("create comment on blog %s: %w", blogId, err)
	}
	return commentFromDTO(resp, blogId), nil
}

func (api *RESTBlogAPI) DeleteComment(ctx context.Context, commentId string) error {
	q := url.Values{"commentId": {commentId}}
	if err := api.delete(ctx, api.authed, api.endpoint("/api/like&comment/removeComment", q)); err != nil {
		return fmt.Errorf("delete comment %s: %w", commentId, err)
	}
	return nil
}

func (api *RESTBlogAPI) CreateBlog(ctx context.Context, draft models.BlogDraft) (models.Blog, error) {
	payload := createBlogPayload{Title: draft.Title, Content: draft.Content, Tags: draft.Tags}
	body, contentType, err := multipartForm("createBlog", payload, draft.ImageName, draft.Image)
	if err != nil {
		return models.Blog{}, err
	}

	var resp blogDTO
	if err := api.sendMultipart(ctx, http.MethodPost, api.endpoint("/api/blog/create", nil), body, contentType, &resp); err != nil {
		return models.Blog{}, fmt.Errorf("create blog: %w", err)
	}
	return blogFromDTO(resp), nil
}

func (api *RESTBlogAPI) UpdateBlog(ctx context.Context, update models.BlogUpdate) (models.Blog, error) {
	payload := updateBlogPayload{BlogId: update.BlogId, Title: update.Title, Content: update.Content, Tags: update.Tags}
	body, contentType, err := multipartForm("updateBlog", payload, update.ImageName, update.Image)
	if err != nil {
		return models.Blog{}, err
	}

	var resp blogDTO
	if err := api.sendMultipart(ctx, http.MethodPut, api.endpoint("/api/blog/update", nil), body, contentType, &resp); err != nil {
		return models.Blog{}, fmt.Errorf("update blog %s: %w", update.BlogId, err)
	}
	return blogFromDTO(resp), nil
}

func (api *RESTBlogAPI) DeleteBlog(ctx context.Context, blogId string) error {
	if err := api.delete(ctx, api.authed, api.endpoint("/api/blog/delete/"+url.PathEscape(blogId), nil)); err != nil {
		return fmt.Errorf("delete blog %s: %w", blogId, err)
	}
	return nil
}

func (api *RESTBlogAPI) Profile(ctx context.Context) (models.Profile, error) {
	var resp profileDTO
	if err := api.getJSON(ctx, api.authed, api.endpoint("/api/profile/getProfile", nil), &resp); err != nil {
		return models.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	return profileFromDTO(resp), nil
}

// UpdateProfile sends bio as a plain form field, unlike the blog endpoints
// which wrap their payload in a JSON part.
func (api *RESTBlogAPI) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	body, contentType, err := profileForm(update)
	if err != nil {
		return models.Profile{}, err
	}

	var resp profileDTO
	if err := api.sendMultipart(ctx, http.MethodPost, api.endpoint("/api/profile/update", nil), body, contentType, &resp); err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return profileFromDTO(resp), nil
}

func (api *RESTBlogAPI) Search(ctx context.Context, query string) ([]models.BlogSummary, error) {
	q := url.Values{"query": {query}}

	var resp feedResponse
	if err := api.getJSON(ctx, api.anon, api.endpoint("/api/map/search", q), &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]models.BlogSummary, 0, len(resp.Blogs))
	for _, d := range resp.Blogs {
		results = append(results, summaryFromDTO(d))
	}
	return results, nil
}

func (api *RESTBlogAPI) UserInfo(ctx context.Context, userId string) (models.UserInfo, error) {
	q := url.Values{"userId": {userId}}

	var resp userInfoDTO
	if err := api.getJSON(ctx, api.anon, api.endpoint("/api/map/userInfo", q), &resp); err != nil {
		return models.UserInfo{}, fmt.Errorf("fetch user info %s: %w", userId, err)
	}
	return userInfoFromDTO(resp), nil
}
