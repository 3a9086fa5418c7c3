package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/rokovi/internal/logger"
)

var (
	// ErrStorageUnavailable means the record store could not be read or written.
	ErrStorageUnavailable = stderrors.New("storage unavailable")
	// ErrMalformedRecord means a persisted record could not be decoded.
	ErrMalformedRecord = stderrors.New("malformed record")
)

// StorageError carries the failed operation alongside the cause.
// It matches both ErrStorageUnavailable and the underlying error with errors.Is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageUnavailable, e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorageUnavailable }

func (e *StorageError) Unwrap() error { return e.Err }

// Unavailable wraps err as a storage failure of op. Returns nil for a nil err.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Malformed reports a record of the given kind and id that failed to decode.
func Malformed(kind, id string, err error) error {
	return fmt.Errorf("%w: %s/%s: %w", ErrMalformedRecord, kind, id, err)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
