package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/deepakSingh023/blogclient/models"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Load(ctx context.Context) (models.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *MockStorage) Save(ctx context.Context, session models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockStorage) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
