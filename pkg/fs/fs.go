package fs

import "os"

// Open opens name for reading, like os.Open.
func Open(name string) (*os.File, error) {
	return os.Open(name)
}

// OpenFile opens name with the given flags and, when the file is
// created, permissions, like os.OpenFile.
func OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}
