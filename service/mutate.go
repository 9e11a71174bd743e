package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/state"
)

// ErrConfirmRequired is returned by destructive actions invoked without
// the confirmed flag. The caller owns the prompt mechanism.
var ErrConfirmRequired = errors.New("confirmation required")

// mutation is a tagged command: the forward delta applied synchronously
// at invoke time, and the inverse replayed when the network call fails.
// On success the optimistic state is treated as authoritative.
type mutation struct {
	name    string
	forward func(st *state.Store)
	inverse func(st *state.Store)
}

func (s *Service) runMutation(ctx context.Context, m mutation, call func(context.Context) error) error {
	if _, ok := s.Session.Current(); !ok {
		return ErrAuthRequired
	}

	m.forward(s.State)

	if err := call(ctx); err != nil {
		m.inverse(s.State)
		s.Log.Warnf("%s failed, reverted: %v", m.name, err)
		return fmt.Errorf("%s: %w", m.name, err)
	}
	return nil
}

// ToggleLike flips the displayed like state. The valid transition is
// read from state, so rapid re-invocations are no-ops rather than
// duplicate requests.
func (s *Service) ToggleLike(ctx context.Context, blogId string) error {
	liked, known := s.State.LikedByViewer(blogId)
	if !known {
		return fmt.Errorf("blog %s is not loaded", blogId)
	}
	if liked {
		return s.Unlike(ctx, blogId)
	}
	return s.Like(ctx, blogId)
}

func (s *Service) Like(ctx context.Context, blogId string) error {
	if liked, known := s.State.LikedByViewer(blogId); known && liked {
		return nil
	}

	m := mutation{
		name:    "like",
		forward: func(st *state.Store) { st.ApplyLikeDelta(blogId, 1, true) },
		inverse: func(st *state.Store) { st.ApplyLikeDelta(blogId, -1, false) },
	}
	return s.runMutation(ctx, m, func(ctx context.Context) error {
		return s.API.Like(ctx, blogId)
	})
}

func (s *Service) Unlike(ctx context.Context, blogId string) error {
	if liked, known := s.State.LikedByViewer(blogId); known && !liked {
		return nil
	}

	m := mutation{
		name:    "unlike",
		forward: func(st *state.Store) { st.ApplyLikeDelta(blogId, -1, false) },
		inverse: func(st *state.Store) { st.ApplyLikeDelta(blogId, 1, true) },
	}
	return s.runMutation(ctx, m, func(ctx context.Context) error {
		return s.API.Unlike(ctx, blogId)
	})
}

// AddComment splices an optimistic entry with a temp UUIDv7 id before
// the request resolves. On success only the server-issued id replaces
// the temp id; the rest of the optimistic entry stands.
func (s *Service) AddComment(ctx context.Context, blogId string, content string) (models.Comment, error) {
	if err := ValidateComment(content); err != nil {
		return models.Comment{}, err
	}
	sess, ok := s.Session.Current()
	if !ok {
		return models.Comment{}, ErrAuthRequired
	}

	tempId, err := uuid.NewV7()
	if err != nil {
		return models.Comment{}, err
	}

	optimistic := models.Comment{
		Id:            tempId.String(),
		BlogId:        blogId,
		AuthorId:      sess.User.Id,
		Author:        sess.User.Username,
		Content:       content,
		CreatedAt:     time.Now().Format(time.RFC3339),
		DeletableByMe: true,
	}

	m := mutation{
		name: "add comment",
		forward: func(st *state.Store) {
			st.PrependComment(blogId, optimistic)
			st.ApplyCommentCountDelta(blogId, 1)
		},
		inverse: func(st *state.Store) {
			st.RemoveCommentById(blogId, optimistic.Id)
			st.ApplyCommentCountDelta(blogId, -1)
		},
	}

	var created models.Comment
	err = s.runMutation(ctx, m, func(ctx context.Context) error {
		c, err := s.API.CreateComment(ctx, blogId, content)
		if err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return models.Comment{}, err
	}

	if created.Id != "" && created.Id != optimistic.Id {
		s.State.ReplaceCommentId(blogId, optimistic.Id, created.Id)
		optimistic.Id = created.Id
	}
	return optimistic, nil
}

// DeleteComment requires the confirmed flag and only acts on comments
// the viewer owns. The splice is reverted at its original index when the
// request fails.
func (s *Service) DeleteComment(ctx context.Context, blogId string, commentId string, confirmed bool) error {
	if _, ok := s.Session.Current(); !ok {
		return ErrAuthRequired
	}

	for _, c := range s.State.CommentItems(blogId) {
		if c.Id == commentId && !c.DeletableByMe {
			return fmt.Errorf("comment %s is not deletable by the current user", commentId)
		}
	}

	if !confirmed {
		return ErrConfirmRequired
	}

	var (
		removed models.Comment
		index   int
		found   bool
	)
	m := mutation{
		name: "delete comment",
		forward: func(st *state.Store) {
			removed, index, found = st.RemoveCommentById(blogId, commentId)
			if found {
				st.ApplyCommentCountDelta(blogId, -1)
			}
		},
		inverse: func(st *state.Store) {
			if found {
				st.InsertCommentAt(blogId, removed, index)
				st.ApplyCommentCountDelta(blogId, 1)
			}
		},
	}
	return s.runMutation(ctx, m, func(ctx context.Context) error {
		return s.API.DeleteComment(ctx, commentId)
	})
}
