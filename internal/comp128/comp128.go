// Package comp128 implements the COMP128 family of GSM A3/A8 functions.
// All three variants map (Ki, RAND) to a 32-bit SRES and a 64-bit Kc.
package comp128

import (
	"errors"
	"fmt"
	"strings"

	"cryptomobile/internal/bits"
)

const (
	KiSize   = 16
	RandSize = 16
)

var ErrInvalidVariant = errors.New("invalid comp128 variant")

// Variant selects the table set and the final Kc rule.
type Variant int

const (
	V1 Variant = iota + 1
	V2
	V3
)

func (v Variant) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant accepts "v1", "1", "comp128v1" and the like, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "comp128")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "v")
	switch s {
	case "1":
		return V1, nil
	case "2":
		return V2, nil
	case "3":
		return V3, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidVariant)
}

// Compute runs the selected variant.
func Compute(ki, rand []byte, v Variant) (sres [4]byte, kc [8]byte, err error) {
	if err = bits.CheckKey("ki", ki, KiSize); err != nil {
		return
	}
	if err = bits.CheckKey("rand", rand, RandSize); err != nil {
		return
	}
	switch v {
	case V1:
		sres, kc = v1(ki, rand)
	case V2:
		sres, kc = v23(ki, rand, true)
	case V3:
		sres, kc = v23(ki, rand, false)
	default:
		err = fmt.Errorf("%v: %w", v, ErrInvalidVariant)
	}
	return
}
