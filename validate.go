package htmd

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput rejects source text that is not valid UTF-8 or that looks
// like binary data. A NUL byte is always binary; otherwise the share of
// control bytes decides, once the sample is large enough to judge.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	control := 0
	for _, b := range src {
		if b == 0x00 {
			return ErrBinaryInput
		}
		if isControlByte(b) {
			control++
		}
	}
	if len(src) >= minBinarySample && control*100 >= len(src)*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlByte(b byte) bool {
	switch {
	case b >= 0x09 && b <= 0x0D:
		return false
	case b < 0x20, b == 0x7F:
		return true
	default:
		return false
	}
}
