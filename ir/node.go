package ir

type Node struct {
	Kind Kind
	Tag  uint16

	Parent      *Node
	ParentIndex int

	// container payload. Names[i] is the attribute name for the
	// scalar at Attrs[i], in the order read from the stream. Values
	// holds child nodes in stream order.
	Names  []string
	Attrs  []*Node
	Values []*Node

	// scalar payload
	Width   int // bit width for Int/Uint/Float kinds
	Int64   *int64
	Uint64  *uint64
	Float64 *float64
	Bool    bool
	String  string
	Bytes   []byte

	// Nul marks a StringKind whose wire form is nul-terminated
	// rather than length-prefixed.
	Nul bool

	// fidelity captures. Blob is the body of an unknown tag, Raw the
	// original bytes of a string that did not survive transcoding,
	// Pad any nonzero alignment padding that followed the node.
	Blob []byte
	Raw  []byte
	Pad  []byte
}

func NewContainer(tag uint16) *Node {
	return &Node{Kind: ContainerKind, Tag: tag}
}

func FromBlob(tag uint16, d []byte) *Node {
	return &Node{Kind: BlobKind, Tag: tag, Blob: d}
}

func FromInt(v int64, width int) *Node {
	return &Node{Kind: IntKind, Width: width, Int64: &v}
}

func FromUint(v uint64, width int) *Node {
	return &Node{Kind: UintKind, Width: width, Uint64: &v}
}

func FromFloat(v float64, width int) *Node {
	return &Node{Kind: FloatKind, Width: width, Float64: &v}
}

func FromBool(v bool) *Node {
	return &Node{Kind: BoolKind, Bool: v}
}

func FromString(v string) *Node {
	return &Node{Kind: StringKind, String: v}
}

func FromCString(v string) *Node {
	return &Node{Kind: StringKind, String: v, Nul: true}
}

func FromBytes(d []byte) *Node {
	return &Node{Kind: BytesKind, Bytes: d}
}

// SetAttr appends an attribute, preserving insertion order. The
// binary format is position-sensitive, so there is no sorted or keyed
// variant.
func (n *Node) SetAttr(name string, v *Node) *Node {
	v.Parent = n
	v.ParentIndex = len(n.Attrs)
	n.Names = append(n.Names, name)
	n.Attrs = append(n.Attrs, v)
	return n
}

// Attr returns the first attribute named name, or nil.
func (n *Node) Attr(name string) *Node {
	for i := range n.Names {
		if n.Names[i] == name {
			return n.Attrs[i]
		}
	}
	return nil
}

func (n *Node) AppendChild(c *Node) *Node {
	c.Parent = n
	c.ParentIndex = len(n.Values)
	n.Values = append(n.Values, c)
	return n
}

// Visit walks the tree. f is called for each node twice, pre- and
// post-order; returning false from the pre-order call skips the
// node's children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Values {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	_, err = f(n, true)
	return err
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Kind = n.Kind
	dst.Tag = n.Tag
	dst.Parent = n.Parent
	dst.ParentIndex = n.ParentIndex
	dst.Width = n.Width
	dst.Bool = n.Bool
	dst.String = n.String
	dst.Nul = n.Nul
	if n.Int64 != nil {
		v := *n.Int64
		dst.Int64 = &v
	}
	if n.Uint64 != nil {
		v := *n.Uint64
		dst.Uint64 = &v
	}
	if n.Float64 != nil {
		v := *n.Float64
		dst.Float64 = &v
	}
	dst.Bytes = cloneBytes(n.Bytes)
	dst.Blob = cloneBytes(n.Blob)
	dst.Raw = cloneBytes(n.Raw)
	dst.Pad = cloneBytes(n.Pad)
	if n.Names != nil {
		dst.Names = append([]string(nil), n.Names...)
	}
	if n.Attrs != nil {
		dst.Attrs = make([]*Node, len(n.Attrs))
		for i, a := range n.Attrs {
			dstA := &Node{}
			a.CloneTo(dstA)
			dstA.Parent = dst
			dstA.ParentIndex = i
			dst.Attrs[i] = dstA
		}
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, c := range n.Values {
			dstC := &Node{}
			c.CloneTo(dstC)
			dstC.Parent = dst
			dstC.ParentIndex = i
			dst.Values[i] = dstC
		}
	}
	return dst
}

func cloneBytes(d []byte) []byte {
	if d == nil {
		return nil
	}
	return append([]byte(nil), d...)
}
