package demo

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindIO Kind = iota
	KindVersion
	KindFormat
	KindMapMismatch
	KindEOF
)

var (
	ErrIO                 = errors.New("demo i/o error")
	ErrUnsupportedVersion = errors.New("unsupported demo version")
	ErrInvalidHeader      = errors.New("invalid demo header")
	ErrMapMismatch        = errors.New("demo was recorded on a different map")
	ErrUnexpectedEOF      = errors.New("unexpected end of demo")

	ErrUnsupportedFormat = errors.New("unsupported demo format")
	ErrNotRecording      = errors.New("demo is not recording")
)

func (k Kind) sentinel() error {
	switch k {
	case KindIO:
		return ErrIO
	case KindVersion:
		return ErrUnsupportedVersion
	case KindFormat:
		return ErrInvalidHeader
	case KindMapMismatch:
		return ErrMapMismatch
	default:
		return ErrUnexpectedEOF
	}
}

func (k Kind) String() string {
	return k.sentinel().Error()
}

// Error is returned by every fallible demo operation. It matches both the
// sentinel for its Kind and its cause with errors.Is.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	message := e.Kind.String()
	if e.Path != "" {
		message = fmt.Sprintf("%s '%s'", message, e.Path)
	}
	if e.Err != nil {
		message = fmt.Sprintf("%s: %s", message, e.Err)
	}
	return message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}
