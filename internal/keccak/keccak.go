// Package keccak implements the Keccak-p[1600] permutation with 24 rounds.
// It is a bare permutation: padding, rate and capacity belong to callers.
package keccak

import (
	"encoding/binary"
	mbits "math/bits"

	"cryptomobile/internal/bits"
)

// StateSize is the permutation width in bytes.
const StateSize = 200

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rhoOffsets is indexed [x][y].
var rhoOffsets = [5][5]int{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// P1600 permutes 25 lanes in place; lane (x, y) is a[x+5*y].
func P1600(a *[25]uint64) {
	var c, d [5]uint64
	var b [25]uint64
	for round := 0; round < 24; round++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ mbits.RotateLeft64(c[(x+1)%5], 1)
		}
		for i := range a {
			a[i] ^= d[i%5]
		}

		// rho and pi
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y+5*((2*x+3*y)%5)] = mbits.RotateLeft64(a[x+5*y], rhoOffsets[x][y])
			}
		}

		// chi
		for y := 0; y < 25; y += 5 {
			for x := 0; x < 5; x++ {
				a[y+x] = b[y+x] ^ (^b[y+(x+1)%5] & b[y+(x+2)%5])
			}
		}

		// iota
		a[0] ^= roundConstants[round]
	}
}

// Permute applies the permutation to a 200-byte state in place. Lanes are
// read and written little-endian, the convention of the Keccak reference.
func Permute(state *[StateSize]byte) {
	var a [25]uint64
	for i := range a {
		a[i] = binary.LittleEndian.Uint64(state[8*i:])
	}
	P1600(&a)
	for i := range a {
		binary.LittleEndian.PutUint64(state[8*i:], a[i])
	}
}

// PermuteBytes returns the permutation of a 200-byte input; in is not modified.
func PermuteBytes(in []byte) ([]byte, error) {
	if err := bits.CheckKey("keccak state", in, StateSize); err != nil {
		return nil, err
	}
	var st [StateSize]byte
	copy(st[:], in)
	Permute(&st)
	return st[:], nil
}
