// Package ir provides the intermediate representation (IR) for IDO
// documents.
//
// # Overview
//
// The IR is the canonical in-memory form shared by the binary codec
// (package wire) and the text codec (packages parse and encode). A
// document decoded from binary and a document parsed from text are the
// same structure, so either side can feed the other without loss.
//
// # Node Structure
//
// A Node is a recursive tagged union. Its Kind field selects which of
// the payload fields is meaningful:
//
//   - ContainerKind: ordered attributes (Names/Attrs) and ordered
//     children (Values)
//   - IntKind, UintKind: Int64/Uint64 with Width giving the wire bit
//     width (8, 16, 32 or 64)
//   - FloatKind: Float64 with Width 32 or 64
//   - StringKind: String, plus Nul for the nul-terminated wire form
//     and Raw for strings whose bytes do not survive transcoding
//   - BoolKind: Bool
//   - BytesKind: Bytes (length-prefixed raw payload)
//   - BlobKind: Blob, the uninterpreted body of a tag the decoder does
//     not recognize
//
// Every node carries the binary type tag it was read with (Tag) and,
// when the source stream padded it, the captured padding bytes (Pad).
// Blob, Raw and Pad exist purely so that re-encoding reproduces the
// source bytes exactly.
//
// # Ownership
//
// Trees are built once, by the binary decoder or the text parser, and
// are treated as immutable afterwards. Each node is owned by its
// parent container; nodes are never shared between trees. Nothing
// enforces this, it is a convention the codecs rely on.
//
// # Related Packages
//
//   - github.com/signadot/ido-format/go-ido/wire - binary codec
//   - github.com/signadot/ido-format/go-ido/parse - text to IR
//   - github.com/signadot/ido-format/go-ido/encode - IR to text
package ir
