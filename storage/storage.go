package storage

import (
	"context"
	"errors"

	"github.com/deepakSingh023/blogclient/models"
)

// SessionStorage persists the single active session across process
// restarts.
type SessionStorage interface {
	Load(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, session models.Session) error
	Clear(ctx context.Context) error
}

var ErrNoStoredSession = errors.New("no stored session")
