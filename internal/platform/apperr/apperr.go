// Package apperr defines the error taxonomy shared by the store, the
// catalogs, the image store and the document pipeline. Every failure that
// reaches an operator is one of four kinds; callers branch on the kind, not
// on the message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by where it came from.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindStorage
	KindDocument
	KindFileSystem
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	case KindDocument:
		return "document"
	case KindFileSystem:
		return "filesystem"
	default:
		return "unknown"
	}
}

// ErrNotFound is wrapped by storage errors for lookups that matched no row.
var ErrNotFound = errors.New("record not found")

// Error carries a Kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports missing or malformed operator input.
func Validation(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

// Storage wraps a failure of the relational store or a catalog file.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// NotFound is a storage error wrapping ErrNotFound.
func NotFound(op, what string, key any) error {
	return &Error{Kind: KindStorage, Op: op, Err: fmt.Errorf("%s %v: %w", what, key, ErrNotFound)}
}

// Document wraps a rendering or artifact-write failure.
func Document(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindDocument, Op: op, Err: err}
}

// FileSystem wraps a failed image copy, lookup or deletion.
func FileSystem(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindFileSystem, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
