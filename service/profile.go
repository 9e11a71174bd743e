package service

import (
	"context"
	"fmt"

	"github.com/deepakSingh023/blogclient/models"
)

// Profile returns the viewer's profile, from cache unless refresh is
// set. The cache is dropped on logout with everything else.
func (s *Service) Profile(ctx context.Context, refresh bool) (models.Profile, error) {
	if _, ok := s.Session.Current(); !ok {
		return models.Profile{}, ErrAuthRequired
	}

	if !refresh {
		if p, ok := s.State.Profile(); ok {
			return p, nil
		}
	}

	p, err := s.API.Profile(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	s.State.SetProfile(p)
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	if err := ValidateProfileUpdate(update); err != nil {
		return models.Profile{}, err
	}
	if _, ok := s.Session.Current(); !ok {
		return models.Profile{}, ErrAuthRequired
	}

	p, err := s.API.UpdateProfile(ctx, update)
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	s.State.SetProfile(p)
	return p, nil
}
