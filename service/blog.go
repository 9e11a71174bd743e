package service

import (
	"context"
	"fmt"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/state"
)

// GetBlog fetches one blog's detail and caches it as the entity other
// components read like state from.
func (s *Service) GetBlog(ctx context.Context, blogId string) (models.Blog, error) {
	blog, err := s.API.Blog(ctx, blogId, s.viewerId())
	if err != nil {
		return models.Blog{}, err
	}
	s.State.SetBlog(blog)
	return blog, nil
}

func (s *Service) CreateBlog(ctx context.Context, draft models.BlogDraft) (models.Blog, error) {
	if err := ValidateBlogDraft(draft.Title, draft.Content, draft.Tags); err != nil {
		return models.Blog{}, err
	}
	sess, ok := s.Session.Current()
	if !ok {
		return models.Blog{}, ErrAuthRequired
	}

	blog, err := s.API.CreateBlog(ctx, draft)
	if err != nil {
		return models.Blog{}, fmt.Errorf("create blog: %w", err)
	}
	s.State.SetBlog(blog)

	// Feed windows are rebuilt rather than patched so the new blog shows
	// up in server order.
	s.State.Reset(state.FeedScope())
	s.State.Reset(state.UserBlogsScope(sess.User.Id))

	s.Log.Infow("created blog", "blogId", blog.Id)
	return blog, nil
}

func (s *Service) UpdateBlog(ctx context.Context, update models.BlogUpdate) (models.Blog, error) {
	if err := ValidateBlogDraft(update.Title, update.Content, update.Tags); err != nil {
		return models.Blog{}, err
	}
	sess, ok := s.Session.Current()
	if !ok {
		return models.Blog{}, ErrAuthRequired
	}

	blog, err := s.API.UpdateBlog(ctx, update)
	if err != nil {
		return models.Blog{}, fmt.Errorf("update blog: %w", err)
	}
	s.State.SetBlog(blog)
	s.State.Reset(state.FeedScope())
	s.State.Reset(state.UserBlogsScope(sess.User.Id))

	return blog, nil
}

// DeleteBlog is confirm-gated like comment deletion. The forward delta
// removes the blog from the entity cache and every window listing it;
// failure puts everything back where it was.
func (s *Service) DeleteBlog(ctx context.Context, blogId string, confirmed bool) error {
	if _, ok := s.Session.Current(); !ok {
		return ErrAuthRequired
	}
	if !confirmed {
		return ErrConfirmRequired
	}

	var removal state.BlogRemoval
	m := mutation{
		name: "delete blog",
		forward: func(st *state.Store) {
			removal = st.RemoveBlog(blogId)
		},
		inverse: func(st *state.Store) {
			st.RestoreBlog(removal)
		},
	}
	return s.runMutation(ctx, m, func(ctx context.Context) error {
		return s.API.DeleteBlog(ctx, blogId)
	})
}
