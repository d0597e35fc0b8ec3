// Package decode turns raw game-server files into model records, one decoder
// per source format. Decoders are pure functions of the file bytes; they never
// touch the store. A malformed file yields a *FileError that the caller
// records and skips without aborting sibling files.
package decode

import (
	"errors"
	"fmt"
)

// FileError reports one file that could not be decoded. It is recorded in
// the stage summary and the file is skipped; sibling files proceed.
type FileError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Path, e.Reason)
}

func (e *FileError) Unwrap() error { return e.Err }

// IsFileError reports whether err is (or wraps) a FileError.
func IsFileError(err error) bool {
	var fe *FileError
	return errors.As(err, &fe)
}

func fileErr(path, reason string, err error) *FileError {
	return &FileError{Path: path, Reason: reason, Err: err}
}
