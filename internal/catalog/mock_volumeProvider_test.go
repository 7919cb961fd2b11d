package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockVolumeProvider struct {
	mock.Mock
}

func newMockVolumeProvider(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockVolumeProvider {
	m := &mockVolumeProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockVolumeProvider) MachineRoot(pool string, machine string) string {
	ret := m.Called(pool, machine)

	return ret.String(0)
}

func (m *mockVolumeProvider) Exists(ctx context.Context, path string) (bool, error) {
	ret := m.Called(ctx, path)

	return ret.Bool(0), ret.Error(1)
}
