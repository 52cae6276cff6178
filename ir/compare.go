package ir

import (
	"bytes"
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Fidelity captures (Blob, Raw, Pad) participate: two nodes that
// would re-encode to different bytes never compare equal.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Kind != b.Kind {
		return cmp.Compare(a.Kind, b.Kind)
	}
	if a.Tag != b.Tag {
		return cmp.Compare(a.Tag, b.Tag)
	}
	if c := bytes.Compare(a.Pad, b.Pad); c != 0 {
		return c
	}

	switch a.Kind {
	case ContainerKind:
		return compareContainers(a, b)
	case IntKind:
		if a.Width != b.Width {
			return cmp.Compare(a.Width, b.Width)
		}
		return cmp.Compare(int64Of(a), int64Of(b))
	case UintKind:
		if a.Width != b.Width {
			return cmp.Compare(a.Width, b.Width)
		}
		return cmp.Compare(uint64Of(a), uint64Of(b))
	case FloatKind:
		if a.Width != b.Width {
			return cmp.Compare(a.Width, b.Width)
		}
		return cmp.Compare(float64Of(a), float64Of(b))
	case StringKind:
		if a.Nul != b.Nul {
			if !a.Nul {
				return -1
			}
			return 1
		}
		if c := bytes.Compare(a.Raw, b.Raw); c != 0 {
			return c
		}
		return strings.Compare(a.String, b.String)
	case BoolKind:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case BytesKind:
		return bytes.Compare(a.Bytes, b.Bytes)
	case BlobKind:
		return bytes.Compare(a.Blob, b.Blob)
	}
	return 0
}

func compareContainers(a, b *Node) int {
	if c := cmp.Compare(len(a.Names), len(b.Names)); c != 0 {
		return c
	}
	for i := range a.Names {
		if c := strings.Compare(a.Names[i], b.Names[i]); c != 0 {
			return c
		}
		if c := Compare(a.Attrs[i], b.Attrs[i]); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(len(a.Values), len(b.Values)); c != 0 {
		return c
	}
	for i := range a.Values {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return 0
}

func int64Of(n *Node) int64 {
	if n.Int64 == nil {
		return 0
	}
	return *n.Int64
}

func uint64Of(n *Node) uint64 {
	if n.Uint64 == nil {
		return 0
	}
	return *n.Uint64
}

func float64Of(n *Node) float64 {
	if n.Float64 == nil {
		return 0
	}
	return *n.Float64
}
