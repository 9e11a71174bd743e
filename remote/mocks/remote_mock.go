package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/remote"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *MockAPI) Feed(ctx context.Context, cursor remote.PageToken, viewerId string) (remote.FeedPage, error) {
	args := m.Called(ctx, cursor, viewerId)
	return args.Get(0).(remote.FeedPage), args.Error(1)
}

func (m *MockAPI) UserBlogs(ctx context.Context, userId string, cursor remote.PageToken) (remote.FeedPage, error) {
	args := m.Called(ctx, userId, cursor)
	return args.Get(0).(remote.FeedPage), args.Error(1)
}

func (m *MockAPI) Blog(ctx context.Context, blogId string, viewerId string) (models.Blog, error) {
	args := m.Called(ctx, blogId, viewerId)
	return args.Get(0).(models.Blog), args.Error(1)
}

func (m *MockAPI) Comments(ctx context.Context, blogId string, cursor remote.PageToken, viewerId string) (remote.CommentPage, error) {
	args := m.Called(ctx, blogId, cursor, viewerId)
	return args.Get(0).(remote.CommentPage), args.Error(1)
}

func (m *MockAPI) Like(ctx context.Context, blogId string) error {
	args := m.Called(ctx, blogId)
	return args.Error(0)
}

func (m *MockAPI) Unlike(ctx context.Context, blogId string) error {
	args := m.Called(ctx, blogId)
	return args.Error(0)
}

func (m *MockAPI) CreateComment(ctx context.Context, blogId string, content string) (models.Comment, error) {
	args := m.Called(ctx, blogId, content)
	return args.Get(0).(models.Comment), args.Error(1)
}

func (m *MockAPI) DeleteComment(ctx context.Context, commentId string) error {
	args := m.Called(ctx, commentId)
	return args.Error(0)
}

func (m *MockAPI) CreateBlog(ctx context.Context, draft models.BlogDraft) (models.Blog, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(models.Blog), args.Error(1)
}

func (m *MockAPI) UpdateBlog(ctx context.Context, update models.BlogUpdate) (models.Blog, error) {
	args := m.Called(ctx, update)
	return args.Get(0).(models.Blog), args.Error(1)
}

func (m *MockAPI) DeleteBlog(ctx context.Context, blogId string) error {
	args := m.Called(ctx, blogId)
	return args.Error(0)
}

func (m *MockAPI) Profile(ctx context.Context) (models.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *MockAPI) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	args := m.Called(ctx, update)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *MockAPI) Search(ctx context.Context, query string) ([]models.BlogSummary, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.BlogSummary), args.Error(1)
}

func (m *MockAPI) UserInfo(ctx context.Context, userId string) (models.UserInfo, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(models.UserInfo), args.Error(1)
}
