package wire

import (
	"errors"
	"fmt"
)

var (
	ErrBadMagic           = errors.New("bad magic")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrTruncatedInput     = errors.New("truncated input")
	ErrTrailingBytes      = errors.New("trailing bytes")
	ErrLengthMismatch     = errors.New("length mismatch")
	ErrUnexpectedEOF      = errors.New("unexpected eof")
	ErrBadKind            = errors.New("bad scalar kind")
	ErrEncode             = errors.New("encode")
)

// OffsetErr records the byte offset at which a binary codec operation
// failed. It wraps one of the package sentinels.
type OffsetErr struct {
	Off int
	Err error
}

func (e *OffsetErr) Error() string {
	return fmt.Sprintf("%v at byte offset %d", e.Err, e.Off)
}

func (e *OffsetErr) Unwrap() error { return e.Err }

func errAt(off int, err error) error {
	return &OffsetErr{Off: off, Err: err}
}
