package compile

import (
	"errors"
	"fmt"
)

// ErrModulePathUnresolved is returned when a module reference cannot be
// turned into a path. It is distinct from a failure to read the file.
var ErrModulePathUnresolved = errors.New("module path cannot be resolved")

// LoadError is the cached failure of one path.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(path string, err error) *LoadError {
	return &LoadError{
		Path:    path,
		Message: fmt.Sprintf("unable to read %q: %v", path, err),
		Err:     err,
	}
}
