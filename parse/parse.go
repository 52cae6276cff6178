// Package parse turns the text form of a container document back into
// an ir.Document. It is the inverse of package encode: for any
// document d, Parse(encode.Bytes(d)) compares equal to d.
package parse

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/ido-format/go-ido/ir"
	"github.com/signadot/ido-format/go-ido/layout"
	"github.com/signadot/ido-format/go-ido/token"
)

// Parse reads a text document and returns the ir.Document it
// describes.
func Parse(d []byte, popts ...Option) (*ir.Document, error) {
	o := &opts{table: layout.Builtin()}
	for _, f := range popts {
		f(o)
	}
	toks, _, err := token.Tokenize(d)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, table: o.table}
	doc, err := p.document()
	if err != nil {
		return nil, err
	}
	if t := p.cur(); t != nil {
		return nil, p.errAt(t.Pos,
			fmt.Errorf("%w: content after document close", ErrUnbalancedStructure))
	}
	return doc, nil
}

type parser struct {
	toks   []token.Token
	i      int
	table  *layout.Table
	korean bool
	path   []string
}

func (p *parser) cur() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	return &p.toks[p.i]
}

func (p *parser) next() *token.Token {
	t := p.cur()
	if t != nil {
		p.i++
	}
	return t
}

func (p *parser) pathString() string {
	return "/" + strings.Join(p.path, "/")
}

func (p *parser) errAt(pos *token.Pos, err error) error {
	return &Err{Path: p.pathString(), Pos: pos, Err: err}
}

func (p *parser) eof() error {
	return &Err{Path: p.pathString(),
		Err: fmt.Errorf("%w: unexpected end of input", ErrUnbalancedStructure)}
}

func (p *parser) document() (*ir.Document, error) {
	open := p.next()
	if open == nil {
		return nil, p.eof()
	}
	if open.Type != token.TOpen || string(open.Bytes) != "ido" {
		return nil, p.errAt(open.Pos,
			fmt.Errorf("%w: document must start with <ido>", ErrUnbalancedStructure))
	}
	p.path = append(p.path, "ido")
	doc := &ir.Document{}
	haveVersion := false
	attrs, selfClosed, err := p.attrs(open)
	if err != nil {
		return nil, err
	}
	for _, a := range attrs {
		switch a.name {
		case "version":
			v, err := strconv.ParseUint(a.val, 10, 16)
			if err != nil {
				return nil, p.errAt(a.pos,
					fmt.Errorf("%w: version %q", ErrMalformedLiteral, a.val))
			}
			doc.Version = uint16(v)
			haveVersion = true
		case "flags":
			v, err := strconv.ParseUint(a.val, 0, 16)
			if err != nil {
				return nil, p.errAt(a.pos,
					fmt.Errorf("%w: flags %q", ErrMalformedLiteral, a.val))
			}
			doc.Flags = uint16(v)
		case "reserved":
			v, err := strconv.ParseUint(a.val, 0, 32)
			if err != nil {
				return nil, p.errAt(a.pos,
					fmt.Errorf("%w: reserved %q", ErrMalformedLiteral, a.val))
			}
			doc.Reserved = uint32(v)
		default:
			return nil, p.errAt(a.pos,
				fmt.Errorf("%w: document attribute %q", ErrUnknownName, a.name))
		}
	}
	if !haveVersion {
		return nil, p.errAt(open.Pos,
			fmt.Errorf("%w: document needs a version attribute", ErrMalformedLiteral))
	}
	p.korean = doc.Flags&ir.FlagKorean != 0
	if selfClosed {
		return nil, p.errAt(open.Pos,
			fmt.Errorf("%w: document needs a root element", ErrUnbalancedStructure))
	}
	for {
		t := p.cur()
		if t == nil {
			return nil, &UnbalancedErr{Open: open, Path: p.pathString()}
		}
		switch t.Type {
		case token.TOpen:
			if doc.Root != nil {
				return nil, p.errAt(t.Pos,
					fmt.Errorf("%w: document has more than one root element",
						ErrUnbalancedStructure))
			}
			n, err := p.node(0)
			if err != nil {
				return nil, err
			}
			doc.Root = n
		case token.TClose:
			p.next()
			if string(t.Bytes) != "ido" {
				return nil, &UnbalancedErr{Open: open, Close: t, Path: p.pathString()}
			}
			if doc.Root == nil {
				return nil, p.errAt(t.Pos,
					fmt.Errorf("%w: document needs a root element",
						ErrUnbalancedStructure))
			}
			return doc, nil
		default:
			return nil, p.errAt(t.Pos,
				fmt.Errorf("%w: unexpected text content", ErrMalformedLiteral))
		}
	}
}

// node parses one element. idx is the element's index among its
// siblings, used only for error paths.
func (p *parser) node(idx int) (*ir.Node, error) {
	open := p.next() // caller checked TOpen
	name := string(open.Bytes)
	p.path = append(p.path, fmt.Sprintf("%s[%d]", name, idx))
	defer func() { p.path = p.path[:len(p.path)-1] }()

	tag, err := p.resolveTag(name, open.Pos)
	if err != nil {
		return nil, err
	}
	attrs, selfClosed, err := p.attrs(open)
	if err != nil {
		return nil, err
	}

	var pad []byte
	blobSize := -1
	fields := attrs[:0]
	for _, a := range attrs {
		switch {
		case a.name == "_pad":
			pad, err = hexLit(a.val)
			if err != nil {
				return nil, p.errAt(a.pos,
					fmt.Errorf("%w: _pad %q", ErrMalformedLiteral, a.val))
			}
		case a.name == "_size":
			v, err := strconv.ParseUint(a.val, 10, 32)
			if err != nil {
				return nil, p.errAt(a.pos,
					fmt.Errorf("%w: _size %q", ErrMalformedLiteral, a.val))
			}
			blobSize = int(v)
		case strings.HasPrefix(a.name, "__"):
			a.name = a.name[1:]
			fields = append(fields, a)
		case strings.HasPrefix(a.name, "_"):
			return nil, p.errAt(a.pos,
				fmt.Errorf("%w: metadata attribute %q", ErrUnknownName, a.name))
		default:
			fields = append(fields, a)
		}
	}

	if blobSize >= 0 {
		return p.blobNode(open, tag, blobSize, pad, fields, selfClosed)
	}

	n := ir.NewContainer(tag)
	n.Pad = pad
	for _, a := range fields {
		if n.Attr(a.name) != nil {
			return nil, p.errAt(a.pos,
				fmt.Errorf("%w: duplicate attribute %q", ErrMalformedLiteral, a.name))
		}
		v, err := p.scalar(a.name, a.val, a.pos)
		if err != nil {
			return nil, err
		}
		n.SetAttr(a.name, v)
	}
	if selfClosed {
		return n, nil
	}
	for {
		t := p.cur()
		if t == nil {
			return nil, &UnbalancedErr{Open: open, Path: p.pathString()}
		}
		switch t.Type {
		case token.TOpen:
			c, err := p.node(len(n.Values))
			if err != nil {
				return nil, err
			}
			n.AppendChild(c)
		case token.TClose:
			p.next()
			if string(t.Bytes) != name {
				return nil, &UnbalancedErr{Open: open, Close: t, Path: p.pathString()}
			}
			return n, nil
		default:
			return nil, p.errAt(t.Pos,
				fmt.Errorf("%w: unexpected text content", ErrMalformedLiteral))
		}
	}
}

func (p *parser) blobNode(open *token.Token, tag uint16, size int, pad []byte, fields []attr, selfClosed bool) (*ir.Node, error) {
	if len(fields) != 0 {
		return nil, p.errAt(fields[0].pos,
			fmt.Errorf("%w: attribute %q on an opaque element",
				ErrMalformedLiteral, fields[0].name))
	}
	var body string
	if !selfClosed {
		t := p.next()
		if t == nil {
			return nil, &UnbalancedErr{Open: open, Path: p.pathString()}
		}
		if t.Type == token.TText {
			body = string(t.Bytes)
			t = p.next()
		}
		if t == nil {
			return nil, &UnbalancedErr{Open: open, Path: p.pathString()}
		}
		if t.Type != token.TClose || string(t.Bytes) != string(open.Bytes) {
			return nil, &UnbalancedErr{Open: open, Close: t, Path: p.pathString()}
		}
	}
	blob, err := hexLit(body)
	if err != nil {
		return nil, p.errAt(open.Pos,
			fmt.Errorf("%w: opaque body is not hex", ErrMalformedLiteral))
	}
	if len(blob) != size {
		return nil, p.errAt(open.Pos,
			fmt.Errorf("%w: opaque body has %d bytes, _size says %d",
				ErrMalformedLiteral, len(blob), size))
	}
	n := ir.FromBlob(tag, blob)
	n.Pad = pad
	return n, nil
}

func (p *parser) resolveTag(name string, pos *token.Pos) (uint16, error) {
	if rest, ok := strings.CutPrefix(name, "tag0x"); ok {
		v, err := strconv.ParseUint(rest, 16, 16)
		if err != nil {
			return 0, p.errAt(pos, fmt.Errorf("%w: %q", ErrUnknownName, name))
		}
		return uint16(v), nil
	}
	tag, ok := p.table.Tag(name)
	if !ok {
		return 0, p.errAt(pos, fmt.Errorf("%w: %q", ErrUnknownName, name))
	}
	return tag, nil
}

type attr struct {
	name string
	val  string
	pos  *token.Pos
}

// attrs consumes name="value" pairs up to the end of the open tag and
// reports whether the element was self closed.
func (p *parser) attrs(open *token.Token) ([]attr, bool, error) {
	var out []attr
	for {
		t := p.next()
		if t == nil {
			return nil, false, &UnbalancedErr{Open: open, Path: p.pathString()}
		}
		switch t.Type {
		case token.TEnd:
			return out, false, nil
		case token.TSelfEnd:
			return out, true, nil
		case token.TName:
			eq := p.next()
			if eq == nil || eq.Type != token.TEq {
				return nil, false, p.errAt(t.Pos,
					fmt.Errorf("%w: attribute %q needs a value",
						ErrMalformedLiteral, t.Bytes))
			}
			q := p.next()
			if q == nil || q.Type != token.TQuoted {
				return nil, false, p.errAt(t.Pos,
					fmt.Errorf("%w: attribute %q needs a quoted value",
						ErrMalformedLiteral, t.Bytes))
			}
			out = append(out, attr{name: string(t.Bytes), val: string(q.Bytes), pos: t.Pos})
		default:
			return nil, false, p.errAt(t.Pos,
				fmt.Errorf("%w: unexpected %s in element", ErrMalformedLiteral, t.Type))
		}
	}
}

// scalar parses one attribute literal. Values with no type marker are
// plain strings; the encoder prefixes str: whenever a plain string
// would otherwise read as a marker.
func (p *parser) scalar(name, val string, pos *token.Pos) (*ir.Node, error) {
	word, rest, ok := MarkerSplit(val)
	if !ok {
		return ir.FromString(val), nil
	}
	apos := func(err error) error {
		return &Err{Path: p.pathString() + "/@" + name, Pos: pos, Err: err}
	}
	switch word {
	case "str":
		return ir.FromString(rest), nil
	case "cstr":
		return ir.FromCString(rest), nil
	case "bool":
		switch rest {
		case "true":
			return ir.FromBool(true), nil
		case "false":
			return ir.FromBool(false), nil
		}
		return nil, apos(fmt.Errorf("%w: bool %q", ErrMalformedLiteral, rest))
	case "i8", "i16", "i32", "i64":
		w := intWidth(word)
		v, err := strconv.ParseInt(rest, 10, w)
		if err != nil {
			return nil, apos(fmt.Errorf("%w: %s %q", ErrMalformedLiteral, word, rest))
		}
		return ir.FromInt(v, w), nil
	case "u8", "u16", "u32", "u64":
		w := intWidth(word)
		v, err := strconv.ParseUint(rest, 10, w)
		if err != nil {
			return nil, apos(fmt.Errorf("%w: %s %q", ErrMalformedLiteral, word, rest))
		}
		return ir.FromUint(v, w), nil
	case "f32":
		v, err := strconv.ParseFloat(rest, 32)
		if err != nil {
			return nil, apos(fmt.Errorf("%w: f32 %q", ErrMalformedLiteral, rest))
		}
		return ir.FromFloat(v, 32), nil
	case "f64":
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return nil, apos(fmt.Errorf("%w: f64 %q", ErrMalformedLiteral, rest))
		}
		return ir.FromFloat(v, 64), nil
	case "hex":
		b, err := hexLit(rest)
		if err != nil {
			return nil, apos(fmt.Errorf("%w: hex %q", ErrMalformedLiteral, rest))
		}
		return ir.FromBytes(b), nil
	case "raw", "rawz":
		b, err := hexLit(rest)
		if err != nil {
			return nil, apos(fmt.Errorf("%w: %s %q", ErrMalformedLiteral, word, rest))
		}
		s, raw := ir.DecodeString(b, p.korean)
		n := ir.FromString(s)
		n.Raw = raw
		n.Nul = word == "rawz"
		return n, nil
	}
	return nil, apos(fmt.Errorf("%w: %q", ErrUnknownScalarType, word))
}

// intWidth returns the bit width named by an i/u marker word.
func intWidth(word string) int {
	v, _ := strconv.Atoi(word[1:])
	return v
}

// MarkerSplit splits a value into its type marker and literal. A
// marker is one to eight bytes of [a-z0-9] followed by a colon; other
// values, including anything with no colon, are plain strings.
func MarkerSplit(v string) (word, rest string, ok bool) {
	j := strings.IndexByte(v, ':')
	if j < 1 || j > 8 {
		return "", "", false
	}
	for i := 0; i < j; i++ {
		c := v[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return "", "", false
		}
	}
	return v[:j], v[j+1:], true
}

// hexLit decodes hex, ignoring interior whitespace so long bodies can
// be wrapped by hand.
func hexLit(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
