package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepakSingh023/blogclient/models"
)

func (s *Service) Search(ctx context.Context, query string) ([]models.BlogSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is empty", ErrValidation)
	}

	results, err := s.API.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) UserInfo(ctx context.Context, userId string) (models.UserInfo, error) {
	if userId == "" {
		return models.UserInfo{}, fmt.Errorf("%w: user id is empty", ErrValidation)
	}
	return s.API.UserInfo(ctx, userId)
}
