package probe

import "github.com/stretchr/testify/mock"

type mockOsProvider struct {
	mock.Mock
}

func newMockOsProvider(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockOsProvider {
	m := &mockOsProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockOsProvider) ReadFile(name string) ([]byte, error) {
	ret := m.Called(name)

	var data []byte
	if v := ret.Get(0); v != nil {
		data = v.([]byte) //nolint:forcetypeassert
	}

	return data, ret.Error(1)
}

func (m *mockOsProvider) UserHomeDir() (string, error) {
	ret := m.Called()

	return ret.String(0), ret.Error(1)
}
