package storage

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
	bucket string
}

func NewMockStorage() *MockStorage {
	return &MockStorage{bucket: "test-bucket"}
}

func (m *MockStorage) PutObject(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, fileKey, body, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) DeleteObject(ctx context.Context, fileKey string) error {
	args := m.Called(ctx, fileKey)
	return args.Error(0)
}

func (m *MockStorage) Bucket() string {
	return m.bucket
}
