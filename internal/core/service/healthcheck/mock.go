package healthcheck

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockHealthCheckService is a mock implementation of HealthCheckService
type MockHealthCheckService struct {
	mock.Mock
}

func (m *MockHealthCheckService) Check(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
