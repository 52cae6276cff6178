package ir

// Kind discriminates the variants of a Node.
type Kind int

const (
	ContainerKind Kind = iota
	IntKind
	UintKind
	FloatKind
	StringKind
	BoolKind
	BytesKind
	BlobKind
)

func (k Kind) String() string {
	return map[Kind]string{
		ContainerKind: "container",
		IntKind:       "int",
		UintKind:      "uint",
		FloatKind:     "float",
		StringKind:    "string",
		BoolKind:      "bool",
		BytesKind:     "bytes",
		BlobKind:      "blob",
	}[k]
}

// Scalar reports whether k is a scalar value kind, as opposed to a
// container or an opaque blob.
func (k Kind) Scalar() bool {
	return k != ContainerKind && k != BlobKind
}
