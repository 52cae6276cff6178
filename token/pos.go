package token

import (
	"fmt"
	"sort"
)

// PosDoc indexes newline positions so byte offsets can be reported as
// line and column.
type PosDoc struct {
	n []int
}

func NewPosDoc(d []byte) *PosDoc {
	p := &PosDoc{}
	for i, c := range d {
		if c == '\n' {
			p.n = append(p.n, i)
		}
	}
	return p
}

// LineCol returns 1-based line and column for a byte offset.
func (p *PosDoc) LineCol(off int) (int, int) {
	n := len(p.n)
	li := sort.Search(n, func(i int) bool {
		return p.n[i] >= off
	})
	if li == 0 {
		return 1, off + 1
	}
	return li + 1, off - p.n[li-1]
}

func (p *PosDoc) Pos(off int) *Pos {
	return &Pos{Off: off, d: p}
}

type Pos struct {
	Off int
	d   *PosDoc
}

func (p *Pos) String() string {
	if p == nil {
		return "line ?"
	}
	line, col := p.d.LineCol(p.Off)
	return fmt.Sprintf("line %d, col %d", line, col)
}
