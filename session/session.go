// Package session holds the single source of truth for "who is logged
// in". Every network-issuing component reads the credential from here;
// only login and logout mutate it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/deepakSingh023/blogclient/models"
	"github.com/deepakSingh023/blogclient/storage"
)

var ErrNoSession = errors.New("no active session")

type Store struct {
	mu      sync.Mutex
	storage storage.SessionStorage
	current *models.Session
	onClear []func()
	log     *zap.SugaredLogger
}

func NewStore(st storage.SessionStorage, log *zap.SugaredLogger) *Store {
	return &Store{storage: st, log: log}
}

// OnClear registers a hook fired whenever the session is cleared, so
// dependent caches never leak one user's data into the next session.
func (s *Store) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// Restore loads the persisted session on process start. An absent or
// expired credential leaves the client logged out without error.
func (s *Store) Restore(ctx context.Context) error {
	sess, err := s.storage.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoStoredSession) {
			return nil
		}
		return fmt.Errorf("restore session: %w", err)
	}

	if tokenExpired(sess.Token) {
		s.log.Infow("stored session expired, clearing", "user", sess.User.Username)
		if err := s.storage.Clear(ctx); err != nil {
			s.log.Warnf("failed to clear expired session: %v", err)
		}
		return nil
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return nil
}

// Set persists the session first, then publishes it in memory.
func (s *Store) Set(ctx context.Context, sess models.Session) error {
	if sess.Token == "" {
		return errors.New("session has no token")
	}
	if err := s.storage.Save(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return nil
}

// Clear removes the session from memory and durable storage
// synchronously, then fires the invalidation hooks.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	hooks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	err := s.storage.Clear(ctx)

	for _, fn := range hooks {
		fn()
	}

	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Current() (models.Session, bool) {
	s.mu.Lock()
	sess := s.current
	s.mu.Unlock()

	if sess == nil {
		return models.Session{}, false
	}
	if tokenExpired(sess.Token) {
		// Observed expiry counts as logout.
		s.log.Infow("session expired", "user", sess.User.Username)
		if err := s.Clear(context.Background()); err != nil {
			s.log.Warnf("failed to clear expired session: %v", err)
		}
		return models.Session{}, false
	}
	return *sess, true
}

// Token implements oauth2.TokenSource; the authenticated HTTP client
// pulls the bearer credential through here on every request.
func (s *Store) Token() (*oauth2.Token, error) {
	sess, ok := s.Current()
	if !ok {
		return nil, ErrNoSession
	}
	return &oauth2.Token{AccessToken: sess.Token, TokenType: "Bearer"}, nil
}

// tokenExpired introspects the JWT exp claim. The client has no signing
// secret, so the parse is unverified; a token without exp never expires
// locally and the server remains the authority.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
