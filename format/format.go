package format

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/signadot/ido-format/go-ido/shopdb"
	"github.com/signadot/ido-format/go-ido/wire"
)

type Format int

const (
	UnknownFormat Format = iota
	ContainerFormat
	TextFormat
	ShopDBFormat
	DDSFormat
	TGAFormat
	BMPFormat
	PNGFormat
	// LegacyFormat is the old bare container: a fixed-size header
	// followed by a zlib stream, most often a texture.
	LegacyFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"ido":    ContainerFormat,
		"text":   TextFormat,
		"shop":   ShopDBFormat,
		"dds":    DDSFormat,
		"tga":    TGAFormat,
		"bmp":    BMPFormat,
		"png":    PNGFormat,
		"legacy": LegacyFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case ContainerFormat:
		return []byte("ido"), nil
	case TextFormat:
		return []byte("text"), nil
	case ShopDBFormat:
		return []byte("shop"), nil
	case DDSFormat:
		return []byte("dds"), nil
	case TGAFormat:
		return []byte("tga"), nil
	case BMPFormat:
		return []byte("bmp"), nil
	case PNGFormat:
		return []byte("png"), nil
	case LegacyFormat:
		return []byte("legacy"), nil
	case UnknownFormat:
		return []byte("unknown"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case ContainerFormat, ShopDBFormat, LegacyFormat:
		return ".ido"
	case TextFormat:
		return ".txt"
	case DDSFormat:
		return ".dds"
	case TGAFormat:
		return ".tga"
	case BMPFormat:
		return ".bmp"
	case PNGFormat:
		return ".png"
	default:
		return ""
	}
}

const legacyHeaderLen = 0x5f

var (
	ddsPrefix = []byte("DDS ")
	bmpPrefix = []byte("BM")
	pngPrefix = []byte("\x89PNG")
	tgaSuffix = []byte("TRUEVISION-XFILE.\x00")
	textOpen  = []byte("<ido")
)

// Detect identifies a payload by content, never by file name.
func Detect(d []byte) Format {
	switch {
	case wire.Sniff(d):
		return ContainerFormat
	case shopdb.Sniff(d):
		return ShopDBFormat
	case bytes.HasPrefix(bytes.TrimLeft(d, " \t\r\n"), textOpen):
		return TextFormat
	case bytes.HasPrefix(d, ddsPrefix):
		return DDSFormat
	case bytes.HasPrefix(d, pngPrefix):
		return PNGFormat
	case bytes.HasPrefix(d, bmpPrefix):
		return BMPFormat
	case bytes.HasSuffix(d, tgaSuffix):
		return TGAFormat
	case len(d) > legacyHeaderLen && d[legacyHeaderLen] == 0x78:
		return LegacyFormat
	}
	return UnknownFormat
}

// LegacyBody returns the zlib stream of a legacy container.
func LegacyBody(d []byte) ([]byte, error) {
	if Detect(d) != LegacyFormat {
		return nil, fmt.Errorf("%w: not a legacy container", ErrBadFormat)
	}
	return d[legacyHeaderLen:], nil
}
