package schema

import (
	"os"

	"golang.org/x/sys/unix"
)

// OS is an implementation wrapping operating system functions.
type OS struct{}

// MkdirAll wraps around [os.MkdirAll].
func (*OS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// OpenFile wraps around [os.OpenFile].
func (*OS) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// ReadFile wraps around [os.ReadFile].
func (*OS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// UserHomeDir wraps around [os.UserHomeDir].
func (*OS) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// Unix is an implementation wrapping Unix operating system functions.
type Unix struct{}

// Access wraps around [unix.Access].
func (*Unix) Access(path string, mode uint32) error {
	return unix.Access(path, mode)
}
