package configuration

import "github.com/stretchr/testify/mock"

type mockGenericConfigProvider struct {
	mock.Mock
}

func newMockGenericConfigProvider(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockGenericConfigProvider {
	m := &mockGenericConfigProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockGenericConfigProvider) Read(filenames ...string) (map[string]string, error) {
	args := make([]interface{}, len(filenames))
	for i, f := range filenames {
		args[i] = f
	}

	ret := m.Called(args...)

	var envMap map[string]string
	if v := ret.Get(0); v != nil {
		envMap = v.(map[string]string) //nolint:forcetypeassert
	}

	return envMap, ret.Error(1)
}
