// Package shopdb reads and writes the fixed-record shop database
// variant of the container format. Records are 456 bytes; only a
// handful of fields are understood, the rest are carried verbatim so
// a decode/encode cycle reproduces the input exactly.
package shopdb

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/signadot/ido-format/go-ido/wire"

	"golang.org/x/text/encoding/unicode"
)

const (
	// RecordSize is the stride of one shop entry.
	RecordSize = 456

	catOff      = 0x00
	typeOff     = 0x02
	variantOff  = 0x04
	validityOff = 0x06
	flagOff     = 0x0c
	setItemOff  = 0x38
	nameOff     = 0x64
	nameSize    = 100
)

var magic = []byte{0x01, 0x00, 0x01, 0x00}

// Sniff reports whether d looks like a shop database: the four byte
// preamble followed by whole records.
func Sniff(d []byte) bool {
	if len(d) < len(magic) || !bytes.Equal(d[:len(magic)], magic) {
		return false
	}
	return (len(d)-len(magic))%RecordSize == 0
}

// Record is one shop entry. Unparsed regions stay in raw and are
// written back untouched.
type Record struct {
	Category uint16
	TypeID   uint16
	Variant  int16
	Validity int16
	Flag     uint8
	SetItem  int32
	Name     string

	raw []byte
}

// DB is a decoded shop database.
type DB struct {
	Records []*Record
}

// Decode parses a shop database.
func Decode(d []byte) (*DB, error) {
	if len(d) < len(magic) || !bytes.Equal(d[:len(magic)], magic) {
		return nil, fmt.Errorf("%w: no shop preamble", wire.ErrBadMagic)
	}
	body := d[len(magic):]
	if len(body)%RecordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not whole records",
			wire.ErrLengthMismatch, len(body))
	}
	db := &DB{}
	for off := 0; off < len(body); off += RecordSize {
		rec, err := decodeRecord(body[off : off+RecordSize])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(db.Records), err)
		}
		db.Records = append(db.Records, rec)
	}
	return db, nil
}

func decodeRecord(raw []byte) (*Record, error) {
	r := wire.NewReader(raw, binary.LittleEndian)
	rec := &Record{raw: bytes.Clone(raw)}
	var err error
	read := func(off int, f func() error) {
		if err != nil {
			return
		}
		if serr := r.Skip(off - r.Off()); serr != nil {
			err = serr
			return
		}
		err = f()
	}
	read(catOff, func() (e error) { rec.Category, e = r.U16(); return })
	read(typeOff, func() (e error) { rec.TypeID, e = r.U16(); return })
	read(variantOff, func() (e error) { rec.Variant, e = r.I16(); return })
	read(validityOff, func() (e error) { rec.Validity, e = r.I16(); return })
	read(flagOff, func() (e error) { rec.Flag, e = r.U8(); return })
	read(setItemOff, func() (e error) { rec.SetItem, e = r.I32(); return })
	if err != nil {
		return nil, err
	}
	rec.Name, err = decodeName(raw[nameOff : nameOff+nameSize])
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Encode writes the database back out. Understood fields are patched
// into each record's raw image; everything else is byte-identical to
// the decoded input.
func Encode(db *DB) ([]byte, error) {
	w := wire.NewWriter(binary.LittleEndian)
	w.Write(magic)
	for i, rec := range db.Records {
		raw, err := rec.encode()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		w.Write(raw)
	}
	return w.Bytes(), nil
}

func (rec *Record) encode() ([]byte, error) {
	raw := bytes.Clone(rec.raw)
	if raw == nil {
		raw = make([]byte, RecordSize)
	}
	if len(raw) != RecordSize {
		return nil, fmt.Errorf("%w: record image is %d bytes",
			wire.ErrLengthMismatch, len(raw))
	}
	w := wire.NewWriter(binary.LittleEndian)
	w.U16(rec.Category)
	w.U16(rec.TypeID)
	w.I16(rec.Variant)
	w.I16(rec.Validity)
	copy(raw[catOff:], w.Bytes())
	raw[flagOff] = rec.Flag
	w = wire.NewWriter(binary.LittleEndian)
	w.I32(rec.SetItem)
	copy(raw[setItemOff:], w.Bytes())

	// keep the stored name bytes unless the field changed, so
	// whatever follows the terminator survives
	old, err := decodeName(raw[nameOff : nameOff+nameSize])
	if err != nil || old != rec.Name {
		enc, err := encodeName(rec.Name)
		if err != nil {
			return nil, err
		}
		copy(raw[nameOff:nameOff+nameSize], enc)
	}
	return raw, nil
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func decodeName(d []byte) (string, error) {
	// cut at the first zero code unit
	end := len(d)
	for i := 0; i+1 < len(d); i += 2 {
		if d[i] == 0 && d[i+1] == 0 {
			end = i
			break
		}
	}
	out, err := utf16le.NewDecoder().Bytes(d[:end])
	if err != nil {
		return "", fmt.Errorf("%w: name is not utf-16", wire.ErrBadKind)
	}
	return string(out), nil
}

func encodeName(s string) ([]byte, error) {
	enc, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil || len(enc) > nameSize-2 {
		return nil, fmt.Errorf("%w: name %q does not fit", wire.ErrEncode, s)
	}
	out := make([]byte, nameSize)
	copy(out, enc)
	return out, nil
}
