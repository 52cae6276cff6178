package encode

import "github.com/signadot/ido-format/go-ido/layout"

type EncodeOption func(*EncState)

// Indent sets the spaces per nesting level.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Compact drops all newlines and indentation.
func Compact(v bool) EncodeOption {
	return func(es *EncState) { es.compact = v }
}

// EncodeTable supplies the tag table used for element names.
func EncodeTable(t *layout.Table) EncodeOption {
	return func(es *EncState) { es.table = t }
}

// EncodeColors turns on terminal coloring. Colored output is for
// display only and does not parse back.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
