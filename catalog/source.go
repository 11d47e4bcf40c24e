package catalog

import (
	"io/fs"
	"os"
)

// FileSource reads the snippet definition from a path on disk.
func FileSource(path string) Source {
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}

// FSSource reads the snippet definition from a filesystem, typically the
// embedded default bundle.
func FSSource(fsys fs.FS, name string) Source {
	return func() ([]byte, error) {
		return fs.ReadFile(fsys, name)
	}
}
