package registry

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrKindNotFound ErrorKind = iota + 1
	ErrKindParse
	ErrKindValidation
)

var (
	ErrNotFound   = errors.New("servers file not found")
	ErrParse      = errors.New("servers file parse error")
	ErrValidation = errors.New("servers file validation error")
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not_found"
	case ErrKindParse:
		return "parse_error"
	case ErrKindValidation:
		return "validation_error"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case ErrKindNotFound:
		return ErrNotFound
	case ErrKindParse:
		return ErrParse
	case ErrKindValidation:
		return ErrValidation
	default:
		return nil
	}
}

// Error is returned by Load. errors.Is matches it against the sentinel
// of its kind as well as against the wrapped cause.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind.sentinel(), e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
