package testutil

import (
	"context"

	"vdash/internal/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.ConfigMapPublisher = (*MockConfigMapPublisher)(nil)

type MockConfigMapPublisher struct {
	mock.Mock
}

func (m *MockConfigMapPublisher) Publish(
	ctx context.Context,
	namespace, name string,
	labels, data map[string]string,
) error {
	args := m.Called(ctx, namespace, name, labels, data)
	return args.Error(0)
}
