package app

import (
	"errors"
	"fmt"
)

// ErrProjectNotInitialized is returned when a query arrives before a project
// root has been established. It is a value, never a panic.
var ErrProjectNotInitialized = errors.New("project not initialized: set a project root first")

// OperationError reports an I/O, decode, or parse failure on a file the
// caller explicitly targeted. Bulk indexing never produces one; it swallows
// per-file failures instead.
type OperationError struct {
	Op   string // the operation that failed, e.g. "read_file"
	Path string // the file or directory involved, when known
	Err  error
}

func (e *OperationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

func opErr(op, path string, err error) *OperationError {
	return &OperationError{Op: op, Path: path, Err: err}
}
