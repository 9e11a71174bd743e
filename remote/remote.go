package remote

import (
	"context"
	"errors"

	"github.com/deepakSingh023/blogclient/models"
)

// PageToken is an opaque pagination position. The client never interprets
// it, only hands it back verbatim to fetch the next page. An empty token
// always means "first page". A token is only valid for the scope it was
// issued under.
type PageToken string

type FeedPage struct {
	Blogs   []models.BlogSummary
	Next    PageToken
	HasMore bool
}

type CommentPage struct {
	Comments []models.Comment
	Next     PageToken
	HasMore  bool
}

// BlogAPI is the external REST backend. Implementations map transport
// failures to the sentinel errors below where the status allows it.
type BlogAPI interface {
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)
	Register(ctx context.Context, creds models.Credentials) (models.Session, error)

	Feed(ctx context.Context, cursor PageToken, viewerId string) (FeedPage, error)
	UserBlogs(ctx context.Context, userId string, cursor PageToken) (FeedPage, error)
	Blog(ctx context.Context, blogId string, viewerId string) (models.Blog, error)
	Comments(ctx context.Context, blogId string, cursor PageToken, viewerId string) (CommentPage, error)

	Like(ctx context.Context, blogId string) error
	Unlike(ctx context.Context, blogId string) error
	CreateComment(ctx context.Context, blogId string, content string) (models.Comment, error)
	DeleteComment(ctx context.Context, commentId string) error

	CreateBlog(ctx context.Context, draft models.BlogDraft) (models.Blog, error)
	UpdateBlog(ctx context.Context, update models.BlogUpdate) (models.Blog, error)
	DeleteBlog(ctx context.Context, blogId string) error

	Profile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error)

	Search(ctx context.Context, query string) ([]models.BlogSummary, error)
	UserInfo(ctx context.Context, userId string) (models.UserInfo, error)
}

// Custom error types for clarity
var (
	ErrUnauthorized = errors.New("request not authorized")
	ErrNotFound     = errors.New("item does not exist")
)
