// Package encode renders an ir.Document as editable text.
//
// # Usage
//
//	doc, err := wire.Decode(raw)
//	...
//	var buf bytes.Buffer
//	err = encode.Encode(doc, &buf)
//
// The output parses back to an equal document:
// parse.Parse(encode.Bytes(doc)) compares equal to doc.
//
// # Related Packages
//
//   - github.com/signadot/ido-format/go-ido/ir - document model
//   - github.com/signadot/ido-format/go-ido/parse - text to document
//   - github.com/signadot/ido-format/go-ido/wire - binary codec
package encode
