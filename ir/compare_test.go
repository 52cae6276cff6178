package ir

import "testing"

func sample() *Document {
	root := NewContainer(0x0001)
	root.SetAttr("name", FromString("root"))
	root.SetAttr("count", FromUint(5, 16))
	entry := NewContainer(0x0003)
	entry.SetAttr("ratio", FromFloat(1.5, 32))
	entry.SetAttr("id", FromInt(-7, 32))
	entry.AppendChild(FromBlob(0x0099, []byte{0xde, 0xad, 0xbe, 0xef}))
	root.AppendChild(entry)
	root.AppendChild(FromBlob(0x00aa, []byte("opaque")))
	return &Document{Version: 1, Flags: FlagKorean, Root: root}
}

func TestCompareEqual(t *testing.T) {
	a, b := sample(), sample()
	if Compare(a.Root, b.Root) != 0 {
		t.Fatal("identical trees compare unequal")
	}
	if !a.Equal(b) {
		t.Fatal("identical documents unequal")
	}
}

func TestCompareClone(t *testing.T) {
	d := sample()
	if Compare(d.Root, d.Root.Clone()) != 0 {
		t.Fatal("clone compares unequal")
	}
}

func TestCompareDetectsDifferences(t *testing.T) {
	muts := []struct {
		name string
		mut  func(d *Document)
	}{
		{"tag", func(d *Document) { d.Root.Tag = 0x0002 }},
		{"attr order", func(d *Document) {
			d.Root.Names[0], d.Root.Names[1] = d.Root.Names[1], d.Root.Names[0]
			d.Root.Attrs[0], d.Root.Attrs[1] = d.Root.Attrs[1], d.Root.Attrs[0]
		}},
		{"attr value", func(d *Document) { d.Root.Attr("name").String = "tree" }},
		{"int width", func(d *Document) { d.Root.Values[0].Attr("id").Width = 64 }},
		{"child order", func(d *Document) {
			d.Root.Values[0], d.Root.Values[1] = d.Root.Values[1], d.Root.Values[0]
		}},
		{"blob bytes", func(d *Document) { d.Root.Values[1].Blob[0] = 'O' }},
		{"padding", func(d *Document) { d.Root.Values[0].Pad = []byte{0, 1} }},
		{"nul form", func(d *Document) { d.Root.Attr("name").Nul = true }},
		{"raw capture", func(d *Document) { d.Root.Attr("name").Raw = []byte{0xfe} }},
	}
	for _, m := range muts {
		d := sample()
		m.mut(d)
		if Compare(sample().Root, d.Root) == 0 {
			t.Errorf("%s: mutation not detected", m.name)
		}
	}
}

func TestDocumentEqualHeader(t *testing.T) {
	a, b := sample(), sample()
	b.Flags |= FlagCompressed
	if a.Equal(b) {
		t.Fatal("flag difference not detected")
	}
}

func TestHashTracksCompare(t *testing.T) {
	a, b := sample(), sample()
	if a.Hash() != b.Hash() {
		t.Fatal("equal documents hash unequal")
	}
	b.Root.Attr("count").Uint64 = uptr(6)
	if a.Hash() == b.Hash() {
		t.Fatal("different documents hash equal")
	}
}

func uptr(v uint64) *uint64 { return &v }
