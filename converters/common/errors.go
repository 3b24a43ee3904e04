package common

import "errors"

var (
	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrInputUnreadable is returned when the input exists but cannot be read.
	ErrInputUnreadable = errors.New("input unreadable")
	// ErrEmptyHeader is returned when the input has no header row, or the
	// header row has no fields.
	ErrEmptyHeader = errors.New("header row is empty")
	// ErrUnsupportedDialect is returned for a dialect name nobody registered.
	ErrUnsupportedDialect = errors.New("unsupported dialect")
)
