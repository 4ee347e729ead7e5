package connector_test

import (
	"context"

	"github.com/devantler-tech/dbcli/pkg/client/containerruntime"
	"github.com/stretchr/testify/mock"
)

// mockRunner implements containerruntime.Runner for testing.
type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Query(ctx context.Context, args ...string) (string, error) {
	called := m.Called(ctx, args)

	return called.String(0), called.Error(1) //nolint:wrapcheck // mock
}

func (m *mockRunner) Run(ctx context.Context, streams containerruntime.Streams, args ...string) error {
	called := m.Called(ctx, streams, args)

	return called.Error(0) //nolint:wrapcheck // mock
}

func (m *mockRunner) Binary() string {
	return "docker"
}
