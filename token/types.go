// Package token tokenizes the textual (markup) form of decompiled
// IDO documents.
package token

import "fmt"

type Type int

const (
	TOpen    Type = iota // '<' plus an element name
	TClose               // '</' name '>'
	TEnd                 // '>'
	TSelfEnd             // '/>'
	TName                // attribute name
	TEq                  // '='
	TQuoted              // quoted attribute value, Bytes holds the unescaped payload
	TText                // element text content, whitespace-trimmed
)

func (t Type) String() string {
	return map[Type]string{
		TOpen:    "TOpen",
		TClose:   "TClose",
		TEnd:     "TEnd",
		TSelfEnd: "TSelfEnd",
		TName:    "TName",
		TEq:      "TEq",
		TQuoted:  "TQuoted",
		TText:    "TText",
	}[t]
}

type Token struct {
	Type  Type
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos)
}
