package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every configuration failure via errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// Error describes a configuration failure. Key and Line are set when known.
type Error struct {
	Path string
	Key  string
	Line int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidConfig
}
