package ir

import "testing"

func TestAttrOrderPreserved(t *testing.T) {
	n := NewContainer(0x0001)
	n.SetAttr("z", FromString("last? no"))
	n.SetAttr("a", FromString("first? no"))
	n.SetAttr("m", FromUint(1, 8))
	want := []string{"z", "a", "m"}
	for i, name := range want {
		if n.Names[i] != name {
			t.Fatalf("attr %d = %q, want %q", i, n.Names[i], name)
		}
	}
	if n.Attr("a") != n.Attrs[1] {
		t.Fatal("Attr lookup broken")
	}
	if n.Attr("missing") != nil {
		t.Fatal("missing attr should be nil")
	}
}

func TestParentLinks(t *testing.T) {
	root := NewContainer(0x0001)
	c0 := NewContainer(0x0002)
	c1 := FromBlob(0x0099, nil)
	root.AppendChild(c0)
	root.AppendChild(c1)
	if c0.Parent != root || c0.ParentIndex != 0 {
		t.Fatal("first child parent link wrong")
	}
	if c1.Parent != root || c1.ParentIndex != 1 {
		t.Fatal("second child parent link wrong")
	}
}

func TestVisit(t *testing.T) {
	d := sample()
	var pre, post int
	err := d.Root.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// root, entry, blob child of entry, blob child of root
	if pre != 4 || post != 4 {
		t.Fatalf("visited pre=%d post=%d, want 4/4", pre, post)
	}
}

func TestVisitSkip(t *testing.T) {
	d := sample()
	var seen int
	err := d.Root.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost {
			seen++
		}
		return n == d.Root, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// root dives, children do not
	if seen != 3 {
		t.Fatalf("visited %d nodes, want 3", seen)
	}
}
