package ido

import (
	"bytes"
	"errors"
	"testing"

	"github.com/signadot/ido-format/go-ido/ir"
	"github.com/signadot/ido-format/go-ido/layout"
	"github.com/signadot/ido-format/go-ido/wire"
)

func minimalBin(t *testing.T) []byte {
	t.Helper()
	root := ir.NewContainer(0x0001)
	root.SetAttr("name", ir.FromString("root"))
	d, err := wire.Encode(&ir.Document{Version: 1, Root: root})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func richBin(t *testing.T, flags uint16) []byte {
	t.Helper()
	root := ir.NewContainer(0x0001)
	root.SetAttr("name", ir.FromString("root"))
	g := ir.NewContainer(0x0002)
	g.SetAttr("count", ir.FromUint(2, 16))
	g.AppendChild(ir.FromBlob(0x0099, []byte{1, 2, 3, 4, 5, 6}))
	root.AppendChild(g)
	d, err := wire.Encode(&ir.Document{Version: 1, Flags: flags, Root: root})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDecompileMinimal(t *testing.T) {
	text, err := Decompile(minimalBin(t))
	if err != nil {
		t.Fatal(err)
	}
	want := "<ido version=\"1\" flags=\"0x0000\">\n" +
		"  <tag0x01 name=\"root\"/>\n" +
		"</ido>\n"
	if string(text) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", text, want)
	}
}

func TestCompileReproducesBytes(t *testing.T) {
	for _, in := range [][]byte{minimalBin(t), richBin(t, 0)} {
		text, err := Decompile(in)
		if err != nil {
			t.Fatal(err)
		}
		out, err := Compile(text)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(in, out) {
			t.Fatalf("bytes diverged for:\n%s", text)
		}
	}
}

func TestCompressedTextStable(t *testing.T) {
	in := richBin(t, ir.FlagCompressed)
	text, err := Decompile(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Compile(text)
	if err != nil {
		t.Fatal(err)
	}
	text2, err := Decompile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(text, text2) {
		t.Fatalf("text diverged:\n%s\nvs:\n%s", text, text2)
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	var zero [32]byte
	for _, in := range [][]byte{
		minimalBin(t),
		richBin(t, 0),
		richBin(t, ir.FlagCompressed),
	} {
		rep, err := VerifyRoundTrip(in)
		if err != nil {
			t.Fatal(err)
		}
		if rep.Hash == zero || rep.Bytes != len(in) {
			t.Fatalf("report: %+v", rep)
		}
	}
	rep, err := VerifyRoundTrip(richBin(t, ir.FlagCompressed))
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Compressed {
		t.Fatal("compression not reported")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := VerifyRoundTrip([]byte("not a container")); !errors.Is(err, wire.ErrBadMagic) {
		t.Fatalf("got %v", err)
	}
}

func TestTableThreadsThrough(t *testing.T) {
	tbl := layout.Builtin()
	if err := tbl.Add(0x0001, "shop"); err != nil {
		t.Fatal(err)
	}
	text, err := Decompile(minimalBin(t), WithTable(tbl))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(text, []byte("<shop ")) {
		t.Fatalf("table unused:\n%s", text)
	}
	out, err := Compile(text, WithTable(tbl))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, minimalBin(t)) {
		t.Fatal("named compile diverged")
	}
	if _, err := VerifyRoundTrip(minimalBin(t), WithTable(tbl)); err != nil {
		t.Fatal(err)
	}
}

func TestCompactOption(t *testing.T) {
	text, err := Decompile(richBin(t, 0), WithCompact(true))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Count(text, []byte("\n")) != 1 {
		t.Fatalf("compact text:\n%s", text)
	}
	out, err := Compile(text)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, richBin(t, 0)) {
		t.Fatal("compact compile diverged")
	}
}
