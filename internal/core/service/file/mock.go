package file

import (
	"context"
	"webapp/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFileService is a mock implementation of FileService
type MockFileService struct {
	mock.Mock
}

// NewMockFileService creates a new MockFileService
func NewMockFileService() *MockFileService {
	return &MockFileService{}
}

func (m *MockFileService) UploadFile(ctx context.Context, req domain.UploadRequest) (*domain.FileRecord, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileService) GetFile(ctx context.Context, fileID uuid.UUID) (*domain.FileRecord, error) {
	args := m.Called(ctx, fileID)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileService) DeleteFile(ctx context.Context, fileID uuid.UUID) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}
