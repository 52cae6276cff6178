package token

import (
	"errors"
	"testing"
)

type tokTest struct {
	in   string
	want []Type
	e    error
}

func TestTokenizeOK(t *testing.T) {
	tts := []tokTest{
		{
			in:   `<ido></ido>`,
			want: []Type{TOpen, TEnd, TClose},
		},
		{
			in:   `<a x="1"/>`,
			want: []Type{TOpen, TName, TEq, TQuoted, TSelfEnd},
		},
		{
			in: `<a>
  <b n="v" m="w"/>
</a>`,
			want: []Type{TOpen, TEnd, TOpen, TName, TEq, TQuoted, TName, TEq, TQuoted, TSelfEnd, TClose},
		},
		{
			in:   `<blob>deadbeef</blob>`,
			want: []Type{TOpen, TEnd, TText, TClose},
		},
		{
			in:   "  \n\t<a/>  ",
			want: []Type{TOpen, TSelfEnd},
		},
	}
	for _, tt := range tts {
		toks, _, err := Tokenize([]byte(tt.in))
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if len(toks) != len(tt.want) {
			t.Errorf("%q: %d tokens, want %d", tt.in, len(toks), len(tt.want))
			continue
		}
		for i, tok := range toks {
			if tok.Type != tt.want[i] {
				t.Errorf("%q: token %d = %s, want %s", tt.in, i, tok.Type, tt.want[i])
			}
		}
	}
}

func TestTokenizeErrs(t *testing.T) {
	tts := []tokTest{
		{in: `<a x="1"`, e: ErrUnterminated},
		{in: `<a x="unclosed/>`, e: ErrUnterminated},
		{in: `< a/>`, e: ErrSyntax},
		{in: `</>`, e: ErrSyntax},
		{in: `<a x="&bogus;"/>`, e: ErrBadEscape},
		{in: `<a / >`, e: ErrSyntax},
		{in: `<a x="a` + "\n" + `b"/>`, e: ErrUnterminated},
	}
	for _, tt := range tts {
		_, _, err := Tokenize([]byte(tt.in))
		if !errors.Is(err, tt.e) {
			t.Errorf("%q: err = %v, want %v", tt.in, err, tt.e)
		}
	}
}

func TestUnquoteEntities(t *testing.T) {
	toks, _, err := Tokenize([]byte(`<a x="&lt;hi&gt; &quot;there&quot; &amp; &#x41;&#66;"/>`))
	if err != nil {
		t.Fatal(err)
	}
	got := string(toks[3].Bytes)
	want := `<hi> "there" & AB`
	if got != want {
		t.Fatalf("unquoted %q, want %q", got, want)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	vals := []string{
		`plain`,
		`with "quotes" & <angles>`,
		"control\x01\n\ttail",
		"한국어",
		``,
	}
	for _, v := range vals {
		in := `<a x="` + Escape(v) + `"/>`
		toks, _, err := Tokenize([]byte(in))
		if err != nil {
			t.Errorf("%q: %v", v, err)
			continue
		}
		if got := string(toks[3].Bytes); got != v {
			t.Errorf("escape round trip %q -> %q", v, got)
		}
	}
}

func TestPos(t *testing.T) {
	toks, _, err := Tokenize([]byte("<a>\n  <b/>\n</a>"))
	if err != nil {
		t.Fatal(err)
	}
	// second TOpen is <b on line 2
	var b *Token
	for i := range toks {
		if toks[i].Type == TOpen && string(toks[i].Bytes) == "b" {
			b = &toks[i]
		}
	}
	if b == nil {
		t.Fatal("no <b token")
	}
	line, col := 0, 0
	line, col = b.Pos.d.LineCol(b.Pos.Off)
	if line != 2 || col != 3 {
		t.Fatalf("pos = %d:%d, want 2:3", line, col)
	}
}
