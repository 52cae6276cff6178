// Package layout carries the table of known IDO type tags.
//
// A known tag is one whose body the binary decoder parses as
// attributes and children; anything else is preserved as an opaque
// blob. Tags can additionally be given names, which the text codec
// uses for element names in place of the tag0x%x fallback. The
// built-in table knows the tags observed in captured samples; names
// are typically supplied per game client via a TOML file.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

var ErrTable = errors.New("bad tag table")

type Table struct {
	names map[uint16]string
	tags  map[string]uint16
}

func New() *Table {
	return &Table{
		names: map[uint16]string{},
		tags:  map[string]uint16{},
	}
}

// Builtin returns the tags recovered from captured sample files. They
// are known (their bodies parse) but unnamed; element naming falls
// back to tag0x%x until a table file names them.
func Builtin() *Table {
	t := New()
	for tag := uint16(0x0001); tag <= 0x0006; tag++ {
		t.AddKnown(tag)
	}
	return t
}

// AddKnown marks a tag as structurally known without naming it.
func (t *Table) AddKnown(tag uint16) {
	if _, ok := t.names[tag]; !ok {
		t.names[tag] = ""
	}
}

// Add marks a tag known and names it. Duplicate names or renames of
// an already-named tag fail; the text codec needs the mapping to be
// one-to-one in both directions.
func (t *Table) Add(tag uint16, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name for tag 0x%02x", ErrTable, tag)
	}
	if !nameOK(name) {
		return fmt.Errorf("%w: %q is reserved or not a valid element name", ErrTable, name)
	}
	if prev, ok := t.names[tag]; ok && prev != "" && prev != name {
		return fmt.Errorf("%w: tag 0x%02x already named %q", ErrTable, tag, prev)
	}
	if prev, ok := t.tags[name]; ok && prev != tag {
		return fmt.Errorf("%w: name %q already maps to tag 0x%02x", ErrTable, name, prev)
	}
	t.names[tag] = name
	t.tags[name] = tag
	return nil
}

func (t *Table) Known(tag uint16) bool {
	_, ok := t.names[tag]
	return ok
}

// Name returns the element name for a tag, or "" when the tag is
// unnamed or unknown.
func (t *Table) Name(tag uint16) string {
	return t.names[tag]
}

func (t *Table) Tag(name string) (uint16, bool) {
	tag, ok := t.tags[name]
	return tag, ok
}

// nameOK rejects names the text codec reserves: the document root,
// the tag0x fallback namespace, metadata attributes, and anything
// that is not a plain element name.
func nameOK(name string) bool {
	if name == "ido" || strings.HasPrefix(name, "tag0x") {
		return false
	}
	if c := name[0]; c == '_' || c == '-' || c == '.' || (c >= '0' && c <= '9') {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}
