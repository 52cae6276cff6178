package ido

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/signadot/ido-format/go-ido/debug"
	"github.com/signadot/ido-format/go-ido/encode"
	"github.com/signadot/ido-format/go-ido/ir"
	"github.com/signadot/ido-format/go-ido/parse"
	"github.com/signadot/ido-format/go-ido/wire"

	"github.com/sergi/go-diff/diffmatchpatch"
)

var ErrRoundTrip = errors.New("round trip")

// VerifyError pinpoints where a round trip diverged, with a readable
// diff of the two renderings.
type VerifyError struct {
	Stage string
	Diff  string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%v: %s stage diverged\n%s", ErrRoundTrip, e.Stage, e.Diff)
}

func (e *VerifyError) Unwrap() error { return ErrRoundTrip }

// VerifyReport summarizes a successful round trip.
type VerifyReport struct {
	Hash       [32]byte
	Compressed bool
	Bytes      int
}

// VerifyRoundTrip proves a container survives decompile and compile.
// For uncompressed containers the recompiled bytes must be identical;
// for compressed ones the guarantee holds at the document and text
// level, since deflate admits many encodings of the same body.
func VerifyRoundTrip(raw []byte, opts ...Option) (*VerifyReport, error) {
	c := newConfig(opts)
	doc, err := wire.Decode(raw, wire.WithTable(c.table))
	if err != nil {
		return nil, err
	}
	out, err := wire.Encode(doc)
	if err != nil {
		return nil, err
	}
	if !doc.Compressed() {
		if !bytes.Equal(raw, out) {
			return nil, &VerifyError{Stage: "binary", Diff: diff(hex.Dump(raw), hex.Dump(out))}
		}
	} else {
		doc2, err := wire.Decode(out, wire.WithTable(c.table))
		if err != nil {
			return nil, err
		}
		if !doc.Equal(doc2) {
			return nil, &VerifyError{Stage: "binary", Diff: docDiff(c, doc, doc2)}
		}
	}

	text, err := encode.Bytes(doc, encode.EncodeTable(c.table),
		encode.Indent(c.indent), encode.Compact(c.compact))
	if err != nil {
		return nil, err
	}
	back, err := parse.Parse(text, parse.WithTable(c.table))
	if err != nil {
		return nil, err
	}
	if !doc.Equal(back) {
		return nil, &VerifyError{Stage: "text", Diff: docDiff(c, doc, back)}
	}
	h1, h2 := doc.Hash(), back.Hash()
	if debug.Verify() {
		debug.Logf("verify: hash %x", h1)
	}
	if h1 != h2 {
		return nil, &VerifyError{Stage: "text", Diff: docDiff(c, doc, back)}
	}
	return &VerifyReport{
		Hash:       h1,
		Compressed: doc.Compressed(),
		Bytes:      len(raw),
	}, nil
}

func docDiff(c *config, a, b *ir.Document) string {
	at, err := encode.Bytes(a, encode.EncodeTable(c.table))
	if err != nil {
		return err.Error()
	}
	bt, err := encode.Bytes(b, encode.EncodeTable(c.table))
	if err != nil {
		return err.Error()
	}
	return diff(string(at), string(bt))
}

func diff(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffPrettyText(dmp.DiffCleanupSemantic(diffs))
}
