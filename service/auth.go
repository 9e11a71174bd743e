package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepakSingh023/blogclient/models"
)

// ErrAuthRequired is raised instead of sending a request when a write
// action is attempted without an active session. The caller decides
// whether to prompt for login.
var ErrAuthRequired = errors.New("authentication required")

func (s *Service) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if err := ValidateLogin(creds); err != nil {
		return models.Session{}, err
	}

	sess, err := s.API.Login(ctx, creds)
	if err != nil {
		return models.Session{}, fmt.Errorf("login failed: %w", err)
	}

	// A new identity invalidates everything cached for the old one.
	s.State.ResetAll()
	if err := s.Session.Set(ctx, sess); err != nil {
		return models.Session{}, err
	}

	s.Log.Infow("logged in", "user", sess.User.Username)
	return sess, nil
}

func (s *Service) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if err := ValidateRegistration(creds); err != nil {
		return models.Session{}, err
	}

	sess, err := s.API.Register(ctx, creds)
	if err != nil {
		return models.Session{}, fmt.Errorf("registration failed: %w", err)
	}

	s.State.ResetAll()
	if err := s.Session.Set(ctx, sess); err != nil {
		return models.Session{}, err
	}

	s.Log.Infow("registered", "user", sess.User.Username)
	return sess, nil
}

// Logout clears session memory and durable storage synchronously; the
// session store's clear hook resets all dependent caches.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.Session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.Log.Infow("logged out")
	return nil
}

// Restore loads the persisted session on startup.
func (s *Service) Restore(ctx context.Context) error {
	return s.Session.Restore(ctx)
}
