// Package importer reads locale resume files and upserts them into a document store.
package importer

import (
	"errors"
	"fmt"
	"io/fs"
)

// ReadError represents a failure to read a locale file
type ReadError struct {
	LocaleCode string
	Path       string
	Cause      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error: locale %s: failed to read %s: %v", e.LocaleCode, e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// ParseError represents malformed locale file contents
type ParseError struct {
	LocaleCode string
	Path       string
	Message    string
	Cause      error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: locale %s: %s in %s: %v", e.LocaleCode, e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("parse error: locale %s: %s in %s", e.LocaleCode, e.Message, e.Path)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// WriteError represents a failed document store upsert
type WriteError struct {
	LocaleCode string
	Collection string
	Cause      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: locale %s: failed to upsert %s/%s: %v", e.LocaleCode, e.Collection, e.LocaleCode, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is a ReadError caused by a missing file.
func IsNotFound(err error) bool {
	var readErr *ReadError
	return errors.As(err, &readErr) && errors.Is(readErr.Cause, fs.ErrNotExist)
}

// describeFailure returns the short reason shown when an optional import is skipped.
func describeFailure(err error) string {
	if IsNotFound(err) {
		return "file not found"
	}
	return err.Error()
}
