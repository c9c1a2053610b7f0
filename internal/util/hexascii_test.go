package util

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDecodeHex(t *testing.T) {
	b, err := DecodeHex(" 0xDE AD\nbe ef ")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(b, []byte{0xde, 0xad, 0xbe, 0xef}))

	_, err = DecodeHex("abc")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestToHex(t *testing.T) {
	for in, want := range map[string]string{
		"DEADBEEF": "deadbeef",
		"0x00ff":   "00ff",
		"hello":    "68656c6c6f",
		"abc":      "616263",
	} {
		got, err := ToHex(in)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(got, want), qt.Commentf("%q", in))
	}
	qt.Assert(t, qt.IsFalse(IsLikelyHex("xyz0")))
}
