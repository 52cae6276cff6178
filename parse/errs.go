package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/ido-format/go-ido/token"
)

var (
	ErrUnbalancedStructure = errors.New("unbalanced structure")
	ErrUnknownScalarType   = errors.New("unknown scalar type")
	ErrMalformedLiteral    = errors.New("malformed literal")
	ErrUnknownName         = errors.New("unknown name")
)

// Err wraps a sentinel with the element path and position of the
// fault.
type Err struct {
	Path string
	Pos  *token.Pos
	Err  error
}

func (e *Err) Error() string {
	return fmt.Sprintf("%v at %s (%s)", e.Err, e.Pos, e.Path)
}

func (e *Err) Unwrap() error { return e.Err }

// UnbalancedErr reports an open/close element mismatch with both
// positions.
type UnbalancedErr struct {
	Open  *token.Token
	Close *token.Token
	Path  string
}

func (e *UnbalancedErr) Unwrap() error { return ErrUnbalancedStructure }

func (e *UnbalancedErr) Error() string {
	switch {
	case e.Open == nil:
		return fmt.Sprintf("%v: unexpected </%s> at %s (%s)",
			ErrUnbalancedStructure, e.Close.Bytes, e.Close.Pos, e.Path)
	case e.Close == nil:
		return fmt.Sprintf("%v: unclosed <%s> at %s (%s)",
			ErrUnbalancedStructure, e.Open.Bytes, e.Open.Pos, e.Path)
	default:
		return fmt.Sprintf("%v: <%s> at %s closed by </%s> at %s (%s)",
			ErrUnbalancedStructure, e.Open.Bytes, e.Open.Pos,
			e.Close.Bytes, e.Close.Pos, e.Path)
	}
}
