// Package ido converts between the binary container format and its
// editable text form. Decompile and Compile are inverses: compiling a
// decompiled container reproduces the original bytes, and for
// compressed containers, where the deflate stream is not canonical,
// decompiling the recompiled bytes reproduces the text.
package ido

import (
	"fmt"

	"github.com/signadot/ido-format/go-ido/debug"
	"github.com/signadot/ido-format/go-ido/encode"
	"github.com/signadot/ido-format/go-ido/layout"
	"github.com/signadot/ido-format/go-ido/parse"
	"github.com/signadot/ido-format/go-ido/wire"
)

type config struct {
	table   *layout.Table
	indent  int
	compact bool
	colors  *encode.Colors
}

type Option func(*config)

// WithTable names tags in the text form. Unnamed tags render as
// tag0x hex elements either way.
func WithTable(t *layout.Table) Option {
	return func(c *config) { c.table = t }
}

// WithIndent sets the text indent width.
func WithIndent(n int) Option {
	return func(c *config) { c.indent = n }
}

// WithCompact renders text without newlines.
func WithCompact(v bool) Option {
	return func(c *config) { c.compact = v }
}

// WithColors colors decompiled output for terminal display. Colored
// text does not compile back.
func WithColors(colors *encode.Colors) Option {
	return func(c *config) { c.colors = colors }
}

func newConfig(opts []Option) *config {
	c := &config{
		table:  layout.Builtin(),
		indent: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) encodeOpts() []encode.EncodeOption {
	eo := []encode.EncodeOption{
		encode.EncodeTable(c.table),
		encode.Indent(c.indent),
		encode.Compact(c.compact),
	}
	if c.colors != nil {
		eo = append(eo, encode.EncodeColors(c.colors))
	}
	return eo
}

// Decompile turns a binary container into text.
func Decompile(d []byte, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	doc, err := wire.Decode(d, wire.WithTable(c.table))
	if err != nil {
		return nil, fmt.Errorf("decompile: %w", err)
	}
	if debug.Text() {
		debug.Logf("decompile: %s", debug.Doc{Document: doc})
	}
	text, err := encode.Bytes(doc, c.encodeOpts()...)
	if err != nil {
		return nil, fmt.Errorf("decompile: %w", err)
	}
	return text, nil
}

// Compile turns text back into a binary container.
func Compile(d []byte, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	doc, err := parse.Parse(d, parse.WithTable(c.table))
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	if debug.Wire() {
		debug.Logf("compile: version %d flags %#04x", doc.Version, doc.Flags)
	}
	out, err := wire.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return out, nil
}
