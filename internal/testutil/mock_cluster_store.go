package testutil

import (
	"vdash/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockClusterStore struct {
	mock.Mock
}

func (m *MockClusterStore) Load() (*domain.ClusterRegistryState, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClusterRegistryState), args.Error(1)
}

func (m *MockClusterStore) Save(state *domain.ClusterRegistryState) error {
	args := m.Called(state)
	return args.Error(0)
}
