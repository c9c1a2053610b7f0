package keccak

import (
	"encoding/hex"
	"testing"

	"github.com/go-quicktest/qt"
	"golang.org/x/crypto/sha3"

	"cryptomobile/internal/bits"
)

func TestZeroState(t *testing.T) {
	var st [StateSize]byte
	Permute(&st)
	qt.Assert(t, qt.Equals(hex.EncodeToString(st[:16]), "e7dde140798f25f18a47c033f9ccd584"))

	var a [25]uint64
	P1600(&a)
	qt.Assert(t, qt.Equals(a[0], uint64(0xf1258f7940e1dde7)))
	P1600(&a)
	qt.Assert(t, qt.Equals(a[0], uint64(0x2d5c954df96ecb3c)))
}

func TestPermuteBytes(t *testing.T) {
	in := make([]byte, StateSize)
	for i := range in {
		in[i] = byte(i)
	}
	out, err := PermuteBytes(in)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(hex.EncodeToString(out[:50]), "fa7cd5daf5912812212976dca7e5f8b85eb775028c0fac8f354531749603ee472c968ccb6da8d417b03c44b52aa77f0e3e28"))
	qt.Assert(t, qt.Equals(in[199], byte(199)))

	_, err = PermuteBytes(in[:199])
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidLength))
}

// sha3Sum256 is a minimal sponge over Permute, used to check the permutation
// against an independent SHA3-256.
func sha3Sum256(msg []byte) []byte {
	const rate = 136
	padded := append([]byte(nil), msg...)
	padded = append(padded, 0x06)
	for len(padded)%rate != 0 {
		padded = append(padded, 0)
	}
	padded[len(padded)-1] |= 0x80

	var st [StateSize]byte
	for off := 0; off < len(padded); off += rate {
		for i := 0; i < rate; i++ {
			st[i] ^= padded[off+i]
		}
		Permute(&st)
	}
	return append([]byte(nil), st[:32]...)
}

func TestSpongeMatchesSHA3(t *testing.T) {
	for _, n := range []int{0, 1, 3, 135, 136, 137, 300, 1000} {
		msg := make([]byte, n)
		for i := range msg {
			msg[i] = byte(i * 7)
		}
		want := sha3.Sum256(msg)
		qt.Assert(t, qt.DeepEquals(sha3Sum256(msg), want[:]), qt.Commentf("len=%d", n))
	}
}
