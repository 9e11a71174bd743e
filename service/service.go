package service

import (
	"go.uber.org/zap"

	"github.com/deepakSingh023/blogclient/remote"
	"github.com/deepakSingh023/blogclient/session"
	"github.com/deepakSingh023/blogclient/state"
)

type Service struct {
	API     remote.BlogAPI
	Session *session.Store
	State   *state.Store
	Log     *zap.SugaredLogger
}

func NewService(
	api remote.BlogAPI,
	sess *session.Store,
	st *state.Store,
	log *zap.SugaredLogger,
) (*Service, error) {
	// Logout must never leak the previous user's cached data into the
	// next session.
	sess.OnClear(st.ResetAll)

	return &Service{
		API:     api,
		Session: sess,
		State:   st,
		Log:     log,
	}, nil
}

// viewerId is attached to read endpoints so responses carry
// viewer-specific flags (likedByMe, deletable). Empty when logged out.
func (s *Service) viewerId() string {
	sess, ok := s.Session.Current()
	if !ok {
		return ""
	}
	return sess.User.Id
}
