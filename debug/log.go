package debug

import (
	"fmt"

	"github.com/signadot/ido-format/go-ido/encode"
	"github.com/signadot/ido-format/go-ido/ir"
)

// Doc wraps a document so %s in Logf shows its text form.
type Doc struct{ *ir.Document }

func (d Doc) String() string {
	b, err := encode.Bytes(d.Document)
	if err != nil {
		return fmt.Sprintf("[raw document] %v", d.Document)
	}
	return string(b)
}

func Logf(msg string, args ...any) {
	log.Debug().Msgf(msg, args...)
}
