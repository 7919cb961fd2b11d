package volume

import (
	"context"
	"time"

	"github.com/desertwitch/reflectron/internal/executor"
	"github.com/stretchr/testify/mock"
)

type mockExecutorProvider struct {
	mock.Mock
}

func newMockExecutorProvider(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockExecutorProvider {
	m := &mockExecutorProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockExecutorProvider) Perform(ctx context.Context, description string, check *executor.Command, op executor.Command, stream bool) (executor.Outcome, error) {
	ret := m.Called(ctx, description, check, op, stream)

	return ret.Get(0).(executor.Outcome), ret.Error(1) //nolint:forcetypeassert
}

func (m *mockExecutorProvider) Check(ctx context.Context, cmd executor.Command) (bool, error) {
	ret := m.Called(ctx, cmd)

	return ret.Bool(0), ret.Error(1)
}

func (m *mockExecutorProvider) Privileged(program string, args ...string) (executor.Command, error) {
	ret := m.Called(program, args)

	if fn, ok := ret.Get(0).(func(string, ...string) executor.Command); ok {
		return fn(program, args...), ret.Error(1)
	}

	return ret.Get(0).(executor.Command), ret.Error(1) //nolint:forcetypeassert
}

func (m *mockExecutorProvider) Wait(ctx context.Context, op executor.Command, interval time.Duration) error {
	ret := m.Called(ctx, op, interval)

	return ret.Error(0)
}

func (m *mockExecutorProvider) Which(program string) (string, error) {
	ret := m.Called(program)

	return ret.String(0), ret.Error(1)
}
