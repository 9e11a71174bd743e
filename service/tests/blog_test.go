package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/remote"
	"github.com/deepakSingh023/blogclient/service"
	"github.com/deepakSingh023/blogclient/state"
)

func TestGetBlog_CachesEntity(t *testing.T) {
	svc, mockAPI, _ := setupService(t)
	ctx := context.Background()

	want := models.Blog{Id: "b1", Title: "hello", Likes: 3, LikedByMe: true}
	mockAPI.On("Blog", ctx, "b1", "").Return(want, nil)

	got, err := svc.GetBlog(ctx, "b1")
	assert.NoError(t, err)
	assert.Equal(t, want, got)

	cached, ok := svc.State.Blog("b1")
	assert.True(t, ok)
	assert.Equal(t, want, cached)
}

func TestGetBlog_SendsViewerWhenLoggedIn(t *testing.T) {
	svc, mockAPI, mockStorage := setupService(t)
	ctx := context.Background()

	loginAs(t, svc, mockStorage, models.User{Id: "u1"})
	mockAPI.On("Blog", ctx, "b1", "u1").Return(models.Blog{Id: "b1"}, nil)

	_, err := svc.GetBlog(ctx, "b1")
	assert.NoError(t, err)
	mockAPI.AssertCalled(t, "Blog", ctx, "b1", "u1")
}

func TestCreateBlog_RequiresAuth(t *testing.T) {
	svc, mockAPI, _ := setupService(t)

	draft := models.BlogDraft{Title: "t", Content: "c"}
	_, err := svc.CreateBlog(context.Background(), draft)
	assert.ErrorIs(t, err, service.ErrAuthRequired)
	mockAPI.AssertNotCalled(t, "CreateBlog", mock.Anything, mock.Anything)
}

func TestCreateBlog_ValidationBlocked(t *testing.T) {
	svc, mockAPI, mockStorage := setupService(t)

	loginAs(t, svc, mockStorage, models.User{Id: "u1"})

	_, err := svc.CreateBlog(context.Background(), models.BlogDraft{Title: "", Content: "c"})
	assert.ErrorIs(t, err, service.ErrValidation)
	mockAPI.AssertNotCalled(t, "CreateBlog", mock.Anything, mock.Anything)
}

func TestCreateBlog_ResetsFeedWindows(t *testing.T) {
	svc, mockAPI, mockStorage := setupService(t)
	ctx := context.Background()
	scope := state.FeedScope()

	loginAs(t, svc, mockStorage, models.User{Id: "u1"})

	page := remote.FeedPage{Blogs: makeSummaries("b1"), HasMore: false}
	mockAPI.On("Feed", ctx, remote.PageToken(""), "u1").Return(page, nil)
	require.NoError(t, svc.LoadFirst(ctx, scope))

	draft := models.BlogDraft{Title: "new post", Content: "body"}
	mockAPI.On("CreateBlog", ctx, draft).Return(models.Blog{Id: "b2", Title: "new post"}, nil)

	blog, err := svc.CreateBlog(ctx, draft)
	assert.NoError(t, err)
	assert.Equal(t, "b2", blog.Id)

	// Windows rebuild from empty so the next load shows server order.
	assert.Empty(t, svc.FeedItems(scope))
	assert.True(t, svc.HasMore(scope))

	cached, ok := svc.State.Blog("b2")
	assert.True(t, ok)
	assert.Equal(t, "new post", cached.Title)
}

func TestUpdateBlog_RefreshesEntity(t *testing.T) {
	svc, mockAPI, mockStorage := setupService(t)
	ctx := context.Background()

	loginAs(t, svc, mockStorage, models.User{Id: "u1"})
	svc.State.SetBlog(models.Blog{Id: "b1", Title: "old"})

	update := models.BlogUpdate{BlogId: "b1", Title: "new title", Content: "body"}
	mockAPI.On("UpdateBlog", ctx, update).Return(models.Blog{Id: "b1", Title: "new title"}, nil)

	_, err := svc.UpdateBlog(ctx, update)
	assert.NoError(t, err)

	cached, _ := svc.State.Blog("b1")
	assert.Equal(t, "new title", cached.Title)
}

func TestDeleteBlog_RequiresConfirmation(t *testing.T) {
	svc, mockAPI, mockStorage := setupService(t)

	loginAs(t, svc, mockStorage, models.User{Id: "u1"})
	svc.State.SetBlog(models.Blog{Id: "b1"})

	err := svc.DeleteBlog(context.Background(), "b1", false)
	assert.ErrorIs(t, err, service.ErrConfirmRequired)
	mockAPI.AssertNotCalled(t, "DeleteBlog", mock.Anything, mock.Anything)

	_, ok := svc.State.Blog("b1")
	assert.True(t, ok)
}

func TestDeleteBlog_OptimisticRemovalAndRevert(t *testing.T) {
	svc, mockAPI, mockStorage := setupService(t)
	ctx := context.Background()
	scope := state.FeedScope()

	loginAs(t, svc, mockStorage, models.User{Id: "u1"})

	page := remote.FeedPage{Blogs: makeSummaries("b1", "b2", "b3"), HasMore: false}
	mockAPI.On("Feed", ctx, remote.PageToken(""), "u1").Return(page, nil)
	require.NoError(t, svc.LoadFirst(ctx, scope))
	svc.State.SetBlog(models.Blog{Id: "b2", Title: "middle"})

	mockAPI.On("DeleteBlog", ctx, "b2").Return(errors.New("offline"))

	err := svc.DeleteBlog(ctx, "b2", true)
	assert.Error(t, err)

	// Everything back where it was, including list position.
	items := svc.FeedItems(scope)
	require.Len(t, items, 3)
	assert.Equal(t, "b2", items[1].Id)
	_, ok := svc.State.Blog("b2")
	assert.True(t, ok)
}

func TestDeleteBlog_Success(t *testing.T) {
	svc, mockAPI, mockStorage := setupService(t)
	ctx := context.Background()
	scope := state.FeedScope()

	loginAs(t, svc, mockStorage, models.User{Id: "u1"})

	page := remote.FeedPage{Blogs: makeSummaries("b1", "b2"), HasMore: false}
	mockAPI.On("Feed", ctx, remote.PageToken(""), "u1").Return(page, nil)
	require.NoError(t, svc.LoadFirst(ctx, scope))

	mockAPI.On("DeleteBlog", ctx, "b1").Return(nil)

	assert.NoError(t, svc.DeleteBlog(ctx, "b1", true))

	items := svc.FeedItems(scope)
	require.Len(t, items, 1)
	assert.Equal(t, "b2", items[0].Id)
}
