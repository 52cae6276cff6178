package encode

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/ido-format/go-ido/ir"
	"github.com/signadot/ido-format/go-ido/layout"
	"github.com/signadot/ido-format/go-ido/parse"
	"github.com/signadot/ido-format/go-ido/token"
)

var ErrEncoding = errors.New("encoding")

// blobWrapAt is the body size above which opaque hex is wrapped onto
// its own indented lines.
const blobWrapAt = 32

type EncState struct {
	depth, indent int
	compact       bool

	table *layout.Table

	Color func(ir.Kind, ColorAttr, string) string
}

// Encode writes doc as text.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
		table:  layout.Builtin(),
	}
	for _, opt := range opts {
		opt(es)
	}
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("%w: document has no root", ErrEncoding)
	}
	if err := writeString(w, es.color(ir.ContainerKind, SepColor, "<")+
		es.color(ir.ContainerKind, ElemColor, "ido")); err != nil {
		return err
	}
	if err := es.attr(w, ir.ContainerKind, "version",
		strconv.FormatUint(uint64(doc.Version), 10), true); err != nil {
		return err
	}
	if err := es.attr(w, ir.ContainerKind, "flags",
		fmt.Sprintf("0x%04x", doc.Flags), true); err != nil {
		return err
	}
	if doc.Reserved != 0 {
		if err := es.attr(w, ir.ContainerKind, "reserved",
			fmt.Sprintf("0x%08x", doc.Reserved), true); err != nil {
			return err
		}
	}
	if err := writeString(w, es.color(ir.ContainerKind, SepColor, ">")); err != nil {
		return err
	}
	if err := es.nl(w); err != nil {
		return err
	}
	es.depth++
	if err := es.node(doc.Root, w); err != nil {
		return err
	}
	es.depth--
	if err := es.closeTag(w, ir.ContainerKind, "ido"); err != nil {
		return err
	}
	if es.compact {
		return writeString(w, "\n")
	}
	return nil
}

// Bytes renders doc to a byte slice.
func Bytes(doc *ir.Document, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(doc, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustString renders doc, panicking on error. Mostly for tests.
func MustString(doc *ir.Document, opts ...EncodeOption) string {
	b, err := Bytes(doc, opts...)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (es *EncState) node(n *ir.Node, w io.Writer) error {
	name := es.table.Name(n.Tag)
	if name == "" {
		name = fmt.Sprintf("tag0x%02x", n.Tag)
	}
	switch n.Kind {
	case ir.ContainerKind:
		return es.container(n, name, w)
	case ir.BlobKind:
		return es.blob(n, name, w)
	}
	return fmt.Errorf("%w: %s node as element", ErrEncoding, n.Kind)
}

func (es *EncState) container(n *ir.Node, name string, w io.Writer) error {
	if err := es.openTag(w, n.Kind, name); err != nil {
		return err
	}
	for i, attrName := range n.Names {
		v := n.Attrs[i]
		lit, err := scalarLiteral(v)
		if err != nil {
			return fmt.Errorf("%w in attribute %q", err, attrName)
		}
		if err := es.attr(w, v.Kind, escapeName(attrName), lit, false); err != nil {
			return err
		}
	}
	if err := es.padAttr(w, n); err != nil {
		return err
	}
	if len(n.Values) == 0 {
		return es.selfClose(w, n.Kind)
	}
	if err := writeString(w, es.color(n.Kind, SepColor, ">")); err != nil {
		return err
	}
	if err := es.nl(w); err != nil {
		return err
	}
	es.depth++
	for _, c := range n.Values {
		if err := es.node(c, w); err != nil {
			return err
		}
	}
	es.depth--
	return es.closeTag(w, n.Kind, name)
}

func (es *EncState) blob(n *ir.Node, name string, w io.Writer) error {
	if err := es.openTag(w, n.Kind, name); err != nil {
		return err
	}
	if err := es.attr(w, n.Kind, "_size",
		strconv.Itoa(len(n.Blob)), true); err != nil {
		return err
	}
	if err := es.padAttr(w, n); err != nil {
		return err
	}
	if len(n.Blob) == 0 {
		return es.selfClose(w, n.Kind)
	}
	if err := writeString(w, es.color(n.Kind, SepColor, ">")); err != nil {
		return err
	}
	body := hex.EncodeToString(n.Blob)
	if es.compact || len(n.Blob) <= blobWrapAt {
		if err := writeString(w, es.color(n.Kind, ValueColor, body)); err != nil {
			return err
		}
		return es.closeTagInline(w, n.Kind, name)
	}
	es.depth++
	for i := 0; i < len(body); i += 2 * blobWrapAt {
		j := min(i+2*blobWrapAt, len(body))
		if err := es.nl(w); err != nil {
			return err
		}
		if err := es.pad(w); err != nil {
			return err
		}
		if err := writeString(w, es.color(n.Kind, ValueColor, body[i:j])); err != nil {
			return err
		}
	}
	es.depth--
	if err := es.nl(w); err != nil {
		return err
	}
	return es.closeTag(w, n.Kind, name)
}

func (es *EncState) openTag(w io.Writer, k ir.Kind, name string) error {
	if err := es.pad(w); err != nil {
		return err
	}
	return writeString(w, es.color(k, SepColor, "<")+es.color(k, ElemColor, name))
}

func (es *EncState) selfClose(w io.Writer, k ir.Kind) error {
	if err := writeString(w, es.color(k, SepColor, "/>")); err != nil {
		return err
	}
	return es.nl(w)
}

func (es *EncState) closeTag(w io.Writer, k ir.Kind, name string) error {
	if err := es.pad(w); err != nil {
		return err
	}
	return es.closeTagInline(w, k, name)
}

func (es *EncState) closeTagInline(w io.Writer, k ir.Kind, name string) error {
	s := es.color(k, SepColor, "</") +
		es.color(k, ElemColor, name) +
		es.color(k, SepColor, ">")
	if err := writeString(w, s); err != nil {
		return err
	}
	return es.nl(w)
}

// attr writes one name="value" pair, escaping the value for quoting.
func (es *EncState) attr(w io.Writer, k ir.Kind, name, lit string, meta bool) error {
	if !tokenizableName(name) {
		return fmt.Errorf("%w: attribute name %q", ErrEncoding, name)
	}
	nameAttr := FieldColor
	if meta {
		nameAttr = MetaColor
	}
	s := " " + es.color(k, nameAttr, name) +
		es.color(k, SepColor, `="`) +
		es.color(k, ValueColor, token.Escape(lit)) +
		es.color(k, SepColor, `"`)
	return writeString(w, s)
}

func (es *EncState) padAttr(w io.Writer, n *ir.Node) error {
	if len(n.Pad) == 0 {
		return nil
	}
	return es.attr(w, n.Kind, "_pad", hex.EncodeToString(n.Pad), true)
}

func (es *EncState) pad(w io.Writer) error {
	if es.compact || es.depth == 0 {
		return nil
	}
	return writeString(w, strings.Repeat(" ", es.indent*es.depth))
}

func (es *EncState) nl(w io.Writer) error {
	if es.compact {
		return nil
	}
	return writeString(w, "\n")
}

func (es *EncState) color(k ir.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

// scalarLiteral renders an attribute value with its type marker.
// Plain strings stay bare unless they would read back as a marker.
func scalarLiteral(n *ir.Node) (string, error) {
	switch n.Kind {
	case ir.StringKind:
		if n.Raw != nil {
			word := "raw"
			if n.Nul {
				word = "rawz"
			}
			return word + ":" + hex.EncodeToString(n.Raw), nil
		}
		if n.Nul {
			return "cstr:" + n.String, nil
		}
		if _, _, ok := parse.MarkerSplit(n.String); ok {
			return "str:" + n.String, nil
		}
		return n.String, nil
	case ir.BoolKind:
		return "bool:" + strconv.FormatBool(n.Bool), nil
	case ir.IntKind:
		if err := widthOK(n.Width); err != nil {
			return "", err
		}
		var v int64
		if n.Int64 != nil {
			v = *n.Int64
		}
		return fmt.Sprintf("i%d:%d", n.Width, v), nil
	case ir.UintKind:
		if err := widthOK(n.Width); err != nil {
			return "", err
		}
		var v uint64
		if n.Uint64 != nil {
			v = *n.Uint64
		}
		return fmt.Sprintf("u%d:%d", n.Width, v), nil
	case ir.FloatKind:
		var v float64
		if n.Float64 != nil {
			v = *n.Float64
		}
		switch n.Width {
		case 32:
			return "f32:" + strconv.FormatFloat(v, 'g', -1, 32), nil
		case 64:
			return "f64:" + strconv.FormatFloat(v, 'g', -1, 64), nil
		}
		return "", fmt.Errorf("%w: float width %d", ErrEncoding, n.Width)
	case ir.BytesKind:
		return "hex:" + hex.EncodeToString(n.Bytes), nil
	}
	return "", fmt.Errorf("%w: %s value", ErrEncoding, n.Kind)
}

func widthOK(w int) error {
	switch w {
	case 8, 16, 32, 64:
		return nil
	}
	return fmt.Errorf("%w: integer width %d", ErrEncoding, w)
}

// escapeName keeps metadata attributes distinguishable: a genuine
// name with a leading underscore gains a second one.
func escapeName(name string) string {
	if strings.HasPrefix(name, "_") {
		return "_" + name
	}
	return name
}

func tokenizableName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}
