package token

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Tokenize splits a textual document into tokens. Whitespace between
// elements is insignificant; text content is trimmed.
func Tokenize(d []byte) ([]Token, *PosDoc, error) {
	doc := NewPosDoc(d)
	var toks []Token
	i, n := 0, len(d)
	inElem := false
	elemStart := 0
	for i < n {
		c := d[i]
		if !inElem {
			switch {
			case isSpace(c):
				i++
			case c == '<':
				if i+1 < n && d[i+1] == '/' {
					name, next, err := readCloseTag(d, i, doc)
					if err != nil {
						return nil, doc, err
					}
					toks = append(toks, Token{Type: TClose, Pos: doc.Pos(i), Bytes: name})
					i = next
					break
				}
				start := i + 1
				j := start
				for j < n && isNameByte(d[j]) {
					j++
				}
				if j == start {
					return nil, doc, errAt(doc.Pos(i), fmt.Errorf("%w: expected element name after '<'", ErrSyntax))
				}
				toks = append(toks, Token{Type: TOpen, Pos: doc.Pos(i), Bytes: d[start:j]})
				elemStart = i
				inElem = true
				i = j
			default:
				j := i
				for j < n && d[j] != '<' {
					j++
				}
				txt := bytes.TrimSpace(d[i:j])
				if len(txt) > 0 {
					off := i + bytes.IndexByte(d[i:j], txt[0])
					toks = append(toks, Token{Type: TText, Pos: doc.Pos(off), Bytes: txt})
				}
				i = j
			}
			continue
		}
		switch {
		case isSpace(c):
			i++
		case c == '>':
			toks = append(toks, Token{Type: TEnd, Pos: doc.Pos(i)})
			inElem = false
			i++
		case c == '/':
			if i+1 < n && d[i+1] == '>' {
				toks = append(toks, Token{Type: TSelfEnd, Pos: doc.Pos(i)})
				inElem = false
				i += 2
				break
			}
			return nil, doc, errAt(doc.Pos(i), fmt.Errorf("%w: lone '/'", ErrSyntax))
		case c == '=':
			toks = append(toks, Token{Type: TEq, Pos: doc.Pos(i)})
			i++
		case c == '"':
			val, next, err := unquote(d, i, doc)
			if err != nil {
				return nil, doc, err
			}
			toks = append(toks, Token{Type: TQuoted, Pos: doc.Pos(i), Bytes: val})
			i = next
		case isNameByte(c):
			j := i
			for j < n && isNameByte(d[j]) {
				j++
			}
			toks = append(toks, Token{Type: TName, Pos: doc.Pos(i), Bytes: d[i:j]})
			i = j
		default:
			return nil, doc, errAt(doc.Pos(i), fmt.Errorf("%w: unexpected byte %q in element", ErrSyntax, c))
		}
	}
	if inElem {
		return nil, doc, errAt(doc.Pos(elemStart), ErrUnterminated)
	}
	return toks, doc, nil
}

func readCloseTag(d []byte, i int, doc *PosDoc) ([]byte, int, error) {
	start := i + 2
	j := start
	for j < len(d) && isNameByte(d[j]) {
		j++
	}
	if j == start {
		return nil, 0, errAt(doc.Pos(i), fmt.Errorf("%w: expected element name after '</'", ErrSyntax))
	}
	if j >= len(d) || d[j] != '>' {
		return nil, 0, errAt(doc.Pos(i), ErrUnterminated)
	}
	return d[start:j], j + 1, nil
}

// unquote reads a quoted value starting at the opening quote and
// resolves entity escapes.
func unquote(d []byte, i int, doc *PosDoc) ([]byte, int, error) {
	var out []byte
	j := i + 1
	for j < len(d) {
		switch c := d[j]; c {
		case '"':
			return out, j + 1, nil
		case '&':
			r, next, err := entity(d, j, doc)
			if err != nil {
				return nil, 0, err
			}
			out = utf8.AppendRune(out, r)
			j = next
		case '\n':
			return nil, 0, errAt(doc.Pos(i), fmt.Errorf("%w: newline in quoted value", ErrUnterminated))
		default:
			out = append(out, c)
			j++
		}
	}
	return nil, 0, errAt(doc.Pos(i), ErrUnterminated)
}

func entity(d []byte, i int, doc *PosDoc) (rune, int, error) {
	end := bytes.IndexByte(d[i:], ';')
	if end < 0 || end > 12 {
		return 0, 0, errAt(doc.Pos(i), ErrBadEscape)
	}
	name := string(d[i+1 : i+end])
	next := i + end + 1
	switch name {
	case "quot":
		return '"', next, nil
	case "amp":
		return '&', next, nil
	case "lt":
		return '<', next, nil
	case "gt":
		return '>', next, nil
	case "apos":
		return '\'', next, nil
	}
	if len(name) > 1 && name[0] == '#' {
		base, digits := 10, name[1:]
		if digits != "" && (digits[0] == 'x' || digits[0] == 'X') {
			base, digits = 16, digits[1:]
		}
		v, err := strconv.ParseUint(digits, base, 32)
		if err == nil && utf8.ValidRune(rune(v)) {
			return rune(v), next, nil
		}
	}
	return 0, 0, errAt(doc.Pos(i), fmt.Errorf("%w: &%s;", ErrBadEscape, name))
}

// Escape renders s as a quoted attribute payload: markup bytes become
// entities, control characters numeric references.
func Escape(s string) string {
	var out []byte
	for _, r := range s {
		switch {
		case r == '"':
			out = append(out, "&quot;"...)
		case r == '&':
			out = append(out, "&amp;"...)
		case r == '<':
			out = append(out, "&lt;"...)
		case r == '>':
			out = append(out, "&gt;"...)
		case r < 0x20:
			out = append(out, fmt.Sprintf("&#x%x;", r)...)
		default:
			out = utf8.AppendRune(out, r)
		}
	}
	return string(out)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '.':
		return true
	}
	return false
}
