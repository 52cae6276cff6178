package parse

import (
	"bytes"
	"errors"
	"testing"

	"github.com/signadot/ido-format/go-ido/ir"
	"github.com/signadot/ido-format/go-ido/layout"
)

func TestParseMinimal(t *testing.T) {
	doc, err := Parse([]byte(`<ido version="1" flags="0x0000">
  <tag0x1 name="root"/>
</ido>`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != 1 || doc.Flags != 0 {
		t.Fatalf("header: version %d flags %#x", doc.Version, doc.Flags)
	}
	want := ir.NewContainer(0x0001)
	want.SetAttr("name", ir.FromString("root"))
	if c := ir.Compare(doc.Root, want); c != 0 {
		t.Fatalf("root compares %d", c)
	}
}

func TestParseScalars(t *testing.T) {
	doc, err := Parse([]byte(`<ido version="1" flags="0x0000">
  <tag0x2 a="plain" b="str:u16:looks-typed" c="cstr:end" d="bool:true"
          e="i8:-5" f="i16:-300" g="i32:70000" h="i64:-9000000000"
          i="u8:255" j="u16:65535" k="u32:4000000000" l="u64:18000000000000000000"
          m="f32:1.5" n="f64:-2.25" o="hex:00ff10"/>
</ido>`))
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Root
	checks := []struct {
		name string
		want *ir.Node
	}{
		{"a", ir.FromString("plain")},
		{"b", ir.FromString("u16:looks-typed")},
		{"c", ir.FromCString("end")},
		{"d", ir.FromBool(true)},
		{"e", ir.FromInt(-5, 8)},
		{"f", ir.FromInt(-300, 16)},
		{"g", ir.FromInt(70000, 32)},
		{"h", ir.FromInt(-9000000000, 64)},
		{"i", ir.FromUint(255, 8)},
		{"j", ir.FromUint(65535, 16)},
		{"k", ir.FromUint(4000000000, 32)},
		{"l", ir.FromUint(18000000000000000000, 64)},
		{"m", ir.FromFloat(1.5, 32)},
		{"n", ir.FromFloat(-2.25, 64)},
		{"o", ir.FromBytes([]byte{0x00, 0xff, 0x10})},
	}
	for _, c := range checks {
		got := n.Attr(c.name)
		if got == nil {
			t.Fatalf("%s: missing", c.name)
		}
		if ir.Compare(got, c.want) != 0 {
			t.Fatalf("%s: got %+v want %+v", c.name, got, c.want)
		}
	}
}

func TestWideMarkersKeepWidth(t *testing.T) {
	doc, err := Parse([]byte(`<ido version="1"><tag0x01 v="i64:300" w="u64:300"/></ido>`))
	if err != nil {
		t.Fatal(err)
	}
	v := doc.Root.Attr("v")
	if v.Width != 64 || *v.Int64 != 300 {
		t.Fatalf("v: width %d value %d", v.Width, *v.Int64)
	}
	w := doc.Root.Attr("w")
	if w.Width != 64 || *w.Uint64 != 300 {
		t.Fatalf("w: width %d value %d", w.Width, *w.Uint64)
	}
}

func TestParseNesting(t *testing.T) {
	doc, err := Parse([]byte(`<ido version="1" flags="0x0001">
  <tag0x1>
    <tag0x2 count="u16:2">
      <tag0x4 id="u32:7"/>
      <tag0x4 id="u32:8"/>
    </tag0x2>
  </tag0x1>
</ido>`))
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Compressed() {
		t.Fatal("flags bit lost")
	}
	g := doc.Root.Values[0]
	if g.Tag != 0x0002 || len(g.Values) != 2 {
		t.Fatalf("group: %+v", g)
	}
	if v := g.Values[1].Attr("id"); v == nil || *v.Uint64 != 8 {
		t.Fatalf("second entry id: %+v", v)
	}
}

func TestParseBlobAndPad(t *testing.T) {
	doc, err := Parse([]byte(`<ido version="1" flags="0x0000">
  <tag0x1 _pad="0102">
    <tag0x99 _size="6">00ff00 ff00ff</tag0x99>
    <tag0x9a _size="0"/>
  </tag0x1>
</ido>`))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(doc.Root.Pad, []byte{1, 2}) {
		t.Fatalf("pad: %x", doc.Root.Pad)
	}
	b := doc.Root.Values[0]
	if b.Kind != ir.BlobKind || !bytes.Equal(b.Blob, []byte{0, 0xff, 0, 0xff, 0, 0xff}) {
		t.Fatalf("blob: %+v", b)
	}
	if e := doc.Root.Values[1]; e.Kind != ir.BlobKind || len(e.Blob) != 0 {
		t.Fatalf("empty blob: %+v", e)
	}
}

func TestParseRawStrings(t *testing.T) {
	doc, err := Parse([]byte(`<ido version="1" flags="0x0002">
  <tag0x1 name="raw:a1" note="rawz:a1"/>
</ido>`))
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Root.Attr("name")
	if n == nil || !bytes.Equal(n.Raw, []byte{0xa1}) || n.Nul {
		t.Fatalf("raw: %+v", n)
	}
	z := doc.Root.Attr("note")
	if z == nil || !bytes.Equal(z.Raw, []byte{0xa1}) || !z.Nul {
		t.Fatalf("rawz: %+v", z)
	}
}

func TestParseEscapedAttrName(t *testing.T) {
	doc, err := Parse([]byte(`<ido version="1" flags="0x0000">
  <tag0x1 __legacy="u8:1"/>
</ido>`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root.Attr("_legacy") == nil {
		t.Fatalf("names: %v", doc.Root.Names)
	}
}

func TestParseWithTable(t *testing.T) {
	tbl := layout.Builtin()
	if err := tbl.Add(0x0010, "entry"); err != nil {
		t.Fatal(err)
	}
	doc, err := Parse([]byte(`<ido version="1" flags="0x0000">
  <entry id="u32:9"/>
</ido>`), WithTable(tbl))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root.Tag != 0x0010 {
		t.Fatalf("tag: %#x", doc.Root.Tag)
	}
	_, err = Parse([]byte(`<ido version="1" flags="0x0000"><entry/></ido>`))
	if !errors.Is(err, ErrUnknownName) {
		t.Fatalf("builtin table resolved %v", err)
	}
}

func TestParseErrs(t *testing.T) {
	tts := []struct {
		in string
		e  error
	}{
		{`<ido version="1"><tag0x1 x="frob:1"/></ido>`, ErrUnknownScalarType},
		{`<ido version="1"><tag0x1 x="bool:maybe"/></ido>`, ErrMalformedLiteral},
		{`<ido version="1"><tag0x1 x="i8:300"/></ido>`, ErrMalformedLiteral},
		{`<ido version="1"><tag0x1 x="u8:-1"/></ido>`, ErrMalformedLiteral},
		{`<ido version="1"><tag0x1 x="hex:0"/></ido>`, ErrMalformedLiteral},
		{`<ido version="1"><tag0x1 x="u8:1" x="u8:2"/></ido>`, ErrMalformedLiteral},
		{`<ido version="1"><tag0x1 _frob="1"/></ido>`, ErrUnknownName},
		{`<ido version="1"><shop/></ido>`, ErrUnknownName},
		{`<ido version="1"><tag0xzz/></ido>`, ErrUnknownName},
		{`<ido version="1"><tag0x99 _size="3">00ff</tag0x99></ido>`, ErrMalformedLiteral},
		{`<ido version="1"><tag0x99 _size="1" x="u8:1">00</tag0x99></ido>`, ErrMalformedLiteral},
		{`<ido version="1"><tag0x1>stray</tag0x1></ido>`, ErrMalformedLiteral},
		{`<ido version="1"><tag0x1></tag0x2></ido>`, ErrUnbalancedStructure},
		{`<ido version="1"><tag0x1>`, ErrUnbalancedStructure},
		{`<ido version="1"/>`, ErrUnbalancedStructure},
		{`<ido version="1"></ido>`, ErrUnbalancedStructure},
		{`<ido version="1"><tag0x1/><tag0x1/></ido>`, ErrUnbalancedStructure},
		{`<ido version="1"><tag0x1/></ido><ido version="1"/>`, ErrUnbalancedStructure},
		{`<ido flags="0x0000"><tag0x1/></ido>`, ErrMalformedLiteral},
		{`<ido version="one"><tag0x1/></ido>`, ErrMalformedLiteral},
		{`<ido version="1" color="red"><tag0x1/></ido>`, ErrUnknownName},
		{`<doc version="1"><tag0x1/></doc>`, ErrUnbalancedStructure},
	}
	for _, tt := range tts {
		_, err := Parse([]byte(tt.in))
		if !errors.Is(err, tt.e) {
			t.Fatalf("%s: got %v want %v", tt.in, err, tt.e)
		}
	}
}

func TestUnbalancedErrDetail(t *testing.T) {
	_, err := Parse([]byte(`<ido version="1">
  <tag0x1>
    <tag0x2 id="u8:1">
  </tag0x1>
</ido>`))
	ue := &UnbalancedErr{}
	if !errors.As(err, &ue) {
		t.Fatalf("no detail: %v", err)
	}
	if string(ue.Open.Bytes) != "tag0x2" || string(ue.Close.Bytes) != "tag0x1" {
		t.Fatalf("pair: %s / %s", ue.Open.Bytes, ue.Close.Bytes)
	}
	if ue.Path != "/ido/tag0x1[0]/tag0x2[0]" {
		t.Fatalf("path: %s", ue.Path)
	}
}

func TestErrPath(t *testing.T) {
	_, err := Parse([]byte(`<ido version="1">
  <tag0x1>
    <tag0x2/>
    <tag0x2 count="frob:1"/>
  </tag0x1>
</ido>`))
	pe := &Err{}
	if !errors.As(err, &pe) {
		t.Fatalf("no path err: %v", err)
	}
	if pe.Path != "/ido/tag0x1[0]/tag0x2[1]/@count" {
		t.Fatalf("path: %s", pe.Path)
	}
}
