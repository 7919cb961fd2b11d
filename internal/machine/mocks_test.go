package machine

import (
	"context"

	"github.com/desertwitch/reflectron/internal/catalog"
	"github.com/desertwitch/reflectron/internal/schema"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type mockProberProvider struct {
	mock.Mock
}

func newMockProberProvider(t testingT) *mockProberProvider {
	m := &mockProberProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockProberProvider) Probe(ctx context.Context) (string, error) {
	ret := m.Called(ctx)

	return ret.String(0), ret.Error(1)
}

type mockSettingsProvider struct {
	mock.Mock
}

func newMockSettingsProvider(t testingT) *mockSettingsProvider {
	m := &mockSettingsProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockSettingsProvider) Require(key catalog.Key) (string, error) {
	ret := m.Called(key)

	return ret.String(0), ret.Error(1)
}

type mockMachinesProvider struct {
	mock.Mock
}

func newMockMachinesProvider(t testingT) *mockMachinesProvider {
	m := &mockMachinesProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockMachinesProvider) Create(ctx context.Context, machine schema.Machine) error {
	ret := m.Called(ctx, machine)

	return ret.Error(0)
}

func (m *mockMachinesProvider) Get(name string) (*schema.Machine, bool, error) {
	ret := m.Called(name)

	var machine *schema.Machine
	if v := ret.Get(0); v != nil {
		machine = v.(*schema.Machine) //nolint:forcetypeassert
	}

	return machine, ret.Bool(1), ret.Error(2)
}

func (m *mockMachinesProvider) List() ([]string, error) {
	ret := m.Called()

	var names []string
	if v := ret.Get(0); v != nil {
		names = v.([]string) //nolint:forcetypeassert
	}

	return names, ret.Error(1)
}

type mockVolumeProvider struct {
	mock.Mock
}

func newMockVolumeProvider(t testingT) *mockVolumeProvider {
	m := &mockVolumeProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockVolumeProvider) ProvisionMachine(ctx context.Context, pool string, machine schema.Machine) error {
	ret := m.Called(ctx, pool, machine)

	return ret.Error(0)
}
