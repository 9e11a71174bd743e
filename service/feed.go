package service

import (
	"context"
	"fmt"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/state"
)

// Cursor pagination over server collections. Pages for one scope are
// requested strictly in token order and appended after the previous
// response landed; a trigger arriving while a request is outstanding is
// dropped, not queued.

// LoadFirst rebuilds the scope's window from empty and fetches the first
// page. An empty token always means "first page".
func (s *Service) LoadFirst(ctx context.Context, scope state.Scope) error {
	s.State.Reset(scope)
	return s.LoadMore(ctx, scope)
}

// LoadMore fetches the next page for a scope. It returns nil without
// issuing a request when one is already in flight or the collection is
// exhausted.
func (s *Service) LoadMore(ctx context.Context, scope state.Scope) error {
	ticket, ok := s.State.BeginLoad(scope)
	if !ok {
		return nil
	}

	switch scope.Kind {
	case state.ScopeComments:
		page, err := s.API.Comments(ctx, scope.Key, ticket.Token, s.viewerId())
		if err != nil {
			s.State.AbortLoad(ticket)
			return fmt.Errorf("load comments page: %w", err)
		}
		if !s.State.CompleteCommentLoad(ticket, page) {
			s.Log.Debugw("discarded stale comment page", "blogId", scope.Key)
		}

	case state.ScopeUserBlogs:
		page, err := s.API.UserBlogs(ctx, scope.Key, ticket.Token)
		if err != nil {
			s.State.AbortLoad(ticket)
			return fmt.Errorf("load user blogs page: %w", err)
		}
		if !s.State.CompleteFeedLoad(ticket, page) {
			s.Log.Debugw("discarded stale user blogs page", "userId", scope.Key)
		}

	default:
		page, err := s.API.Feed(ctx, ticket.Token, s.viewerId())
		if err != nil {
			s.State.AbortLoad(ticket)
			return fmt.Errorf("load feed page: %w", err)
		}
		if !s.State.CompleteFeedLoad(ticket, page) {
			s.Log.Debugw("discarded stale feed page")
		}
	}
	return nil
}

func (s *Service) FeedItems(scope state.Scope) []models.BlogSummary {
	return s.State.FeedItems(scope)
}

func (s *Service) CommentItems(blogId string) []models.Comment {
	return s.State.CommentItems(blogId)
}

func (s *Service) HasMore(scope state.Scope) bool {
	return s.State.HasMore(scope)
}
