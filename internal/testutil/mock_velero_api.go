package testutil

import (
	"context"

	"vdash/internal/core/domain"
	"vdash/internal/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.VeleroAPI = (*MockVeleroAPI)(nil)

// MockVeleroAPI provides a testify mock for ports.VeleroAPI
type MockVeleroAPI struct {
	mock.Mock
}

func (m *MockVeleroAPI) ListBackups(ctx context.Context) ([]domain.Backup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Backup), args.Error(1)
}

func (m *MockVeleroAPI) CreateRestore(
	ctx context.Context,
	request domain.CreateRestoreRequest,
) (*domain.Restore, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restore), args.Error(1)
}

func (m *MockVeleroAPI) CreateRestoreWithModifications(
	ctx context.Context,
	request domain.CreateRestoreWithModificationsRequest,
) (*domain.Restore, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restore), args.Error(1)
}
