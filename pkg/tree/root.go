package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// RootError reports a root path that cannot be rendered.
type RootError struct {
	Path   string // Path as given by the caller.
	Reason string // "does not exist" or "is not a directory".
	Err    error  // Underlying stat error, if any.
}

func (e *RootError) Error() string {
	return fmt.Sprintf("Path '%s' %s", e.Path, e.Reason)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// ResolveRoot turns path into an absolute path with symbolic links resolved and
// checks that it names a directory.
func ResolveRoot(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return "", &RootError{Path: path, Reason: "does not exist", Err: err}
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return "", &RootError{Path: path, Reason: "is not a directory"}
	}
	return absPath, nil
}
