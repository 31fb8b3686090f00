package repository

import (
	"context"
	"webapp/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

func NewMockFileRepository() *MockFileRepository {
	return &MockFileRepository{}
}

func (m *MockFileRepository) Create(ctx context.Context, record domain.FileRecord) (*domain.FileRecord, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockHealthCheckRepository struct {
	mock.Mock
}

func NewMockHealthCheckRepository() *MockHealthCheckRepository {
	return &MockHealthCheckRepository{}
}

func (m *MockHealthCheckRepository) Create(ctx context.Context) (*domain.HealthCheck, error) {
	args := m.Called(ctx)
	return args.Get(0).(*domain.HealthCheck), args.Error(1)
}
