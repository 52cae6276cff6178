package ir

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

var ErrUnmappable = errors.New("unmappable string")

// DecodeString converts wire string bytes into the model's UTF-8
// form. When korean is set the bytes are EUC-KR, per the header flag.
// The second result is non-nil when the conversion is lossy; it holds
// the original bytes so re-encoding can reproduce them exactly.
func DecodeString(b []byte, korean bool) (string, []byte) {
	if !korean {
		if utf8.Valid(b) {
			return string(b), nil
		}
		return strings.ToValidUTF8(string(b), "�"), append([]byte(nil), b...)
	}
	s, err := decodeEUCKR(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�"), append([]byte(nil), b...)
	}
	back, err := encodeEUCKR(s)
	if err != nil || !bytes.Equal(back, b) {
		return s, append([]byte(nil), b...)
	}
	return s, nil
}

// EncodeString converts a model string back to wire bytes. A non-nil
// raw capture wins verbatim. Strings that cannot be mapped to the
// target encoding fail with ErrUnmappable rather than substituting;
// the original tool's silent substitution broke round trips.
func EncodeString(s string, raw []byte, korean bool) ([]byte, error) {
	if raw != nil {
		return raw, nil
	}
	if !korean {
		return []byte(s), nil
	}
	d, err := encodeEUCKR(s)
	if err != nil {
		return nil, ErrUnmappable
	}
	return d, nil
}

func decodeEUCKR(b []byte) (string, error) {
	d, err := korean.EUCKR.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func encodeEUCKR(s string) ([]byte, error) {
	return korean.EUCKR.NewEncoder().Bytes([]byte(s))
}
