package token

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax       = errors.New("syntax")
	ErrUnterminated = errors.New("unterminated")
	ErrBadEscape    = errors.New("bad escape")
)

// Err wraps a sentinel with the position it occurred at.
type Err struct {
	Pos *Pos
	Err error
}

func (e *Err) Error() string {
	return fmt.Sprintf("%v at %s", e.Err, e.Pos)
}

func (e *Err) Unwrap() error { return e.Err }

func errAt(pos *Pos, err error) error {
	return &Err{Pos: pos, Err: err}
}
