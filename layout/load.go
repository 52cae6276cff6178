package layout

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type fileTable struct {
	Tags  map[string]int64 `toml:"tags"`
	Known []int64          `toml:"known"`
}

// LoadFile reads a tag table file and merges it over the built-in
// table. The file names tags and may mark additional unnamed tags
// known:
//
//	known = [0x0010, 0x0011]
//
//	[tags]
//	entry = 0x0003
//	script = 0x0006
func LoadFile(path string) (*Table, error) {
	var raw fileTable
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load tag table: %w", err)
	}
	t := Builtin()
	for _, tag := range raw.Known {
		v, err := tagValue(tag)
		if err != nil {
			return nil, err
		}
		t.AddKnown(v)
	}
	for name, tag := range raw.Tags {
		v, err := tagValue(tag)
		if err != nil {
			return nil, err
		}
		if err := t.Add(v, name); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func tagValue(v int64) (uint16, error) {
	if v < 0 || v > 0xffff {
		return 0, fmt.Errorf("%w: tag 0x%x out of range", ErrTable, v)
	}
	return uint16(v), nil
}
