// Package snow3g implements the SNOW 3G word-oriented stream cipher and the
// UEA2/UIA2 (128-EEA1/128-EIA1) modes on top of it.
package snow3g

import (
	"encoding/binary"

	"cryptomobile/internal/bits"
)

const (
	KeySize = 16
	IVSize  = 16
)

var (
	mulAlphaTab = alphaTable(23, 245, 48, 239)
	divAlphaTab = alphaTable(16, 39, 6, 64)
)

func mulx(v, c byte) byte {
	if v&0x80 != 0 {
		return v<<1 ^ c
	}
	return v << 1
}

func mulxPow(v byte, i int, c byte) byte {
	for ; i > 0; i-- {
		v = mulx(v, c)
	}
	return v
}

func alphaTable(p0, p1, p2, p3 int) [256]uint32 {
	var t [256]uint32
	for c := 0; c < 256; c++ {
		b := byte(c)
		t[c] = uint32(mulxPow(b, p0, 0xa9))<<24 |
			uint32(mulxPow(b, p1, 0xa9))<<16 |
			uint32(mulxPow(b, p2, 0xa9))<<8 |
			uint32(mulxPow(b, p3, 0xa9))
	}
	return t
}

// mixColumn applies the S-box then the AES-style MixColumn with reduction c.
func mixColumn(w uint32, box *[256]byte, c byte) uint32 {
	s0 := box[byte(w>>24)]
	s1 := box[byte(w>>16)]
	s2 := box[byte(w>>8)]
	s3 := box[byte(w)]

	r0 := mulx(s0, c) ^ s1 ^ s2 ^ mulx(s3, c) ^ s3
	r1 := mulx(s0, c) ^ s0 ^ mulx(s1, c) ^ s2 ^ s3
	r2 := s0 ^ mulx(s1, c) ^ s1 ^ mulx(s2, c) ^ s3
	r3 := s0 ^ s1 ^ mulx(s2, c) ^ s2 ^ mulx(s3, c)
	return uint32(r0)<<24 | uint32(r1)<<16 | uint32(r2)<<8 | uint32(r3)
}

func s1(w uint32) uint32 { return mixColumn(w, &sr, 0x1b) }
func s2(w uint32) uint32 { return mixColumn(w, &sq, 0x69) }

// State is one keyed SNOW 3G instance. It is not safe for concurrent use;
// each operation owns its own State.
type State struct {
	lfsr       [16]uint32
	r1, r2, r3 uint32
}

// New keys and initialises the generator. k and iv are indexed as in the
// standard (k[0] is K0). The first keystream clock is already discarded.
func New(k, iv [4]uint32) *State {
	const ones = 0xffffffff
	s := &State{}
	s.lfsr = [16]uint32{
		k[0] ^ ones, k[1] ^ ones, k[2] ^ ones, k[3] ^ ones,
		k[0], k[1], k[2], k[3],
		k[0] ^ ones, k[1] ^ ones ^ iv[3], k[2] ^ ones ^ iv[2], k[3] ^ ones,
		k[0] ^ iv[1], k[1], k[2], k[3] ^ iv[0],
	}
	for i := 0; i < 32; i++ {
		s.clockLFSR(s.clockFSM())
	}
	s.clockFSM()
	s.clockLFSR(0)
	return s
}

// NewBytes keys the generator from byte strings: key[0:4] is K3 and
// iv[0:4] is IV3, big-endian, matching how 3GPP writes CK and IV.
func NewBytes(key, iv []byte) (*State, error) {
	if err := bits.CheckKey("snow3g key", key, KeySize); err != nil {
		return nil, err
	}
	if err := bits.CheckKey("snow3g iv", iv, IVSize); err != nil {
		return nil, err
	}
	var k, v [4]uint32
	for i := 0; i < 4; i++ {
		k[3-i] = binary.BigEndian.Uint32(key[4*i:])
		v[3-i] = binary.BigEndian.Uint32(iv[4*i:])
	}
	return New(k, v), nil
}

func (s *State) clockFSM() uint32 {
	f := (s.lfsr[15] + s.r1) ^ s.r2
	r := s.r2 + (s.r3 ^ s.lfsr[5])
	s.r3 = s2(s.r2)
	s.r2 = s1(s.r1)
	s.r1 = r
	return f
}

// clockLFSR shifts in a new cell; f is zero in keystream mode.
func (s *State) clockLFSR(f uint32) {
	s0, s11 := s.lfsr[0], s.lfsr[11]
	v := s0<<8 ^ mulAlphaTab[s0>>24] ^ s.lfsr[2] ^ s11>>8 ^ divAlphaTab[s11&0xff] ^ f
	copy(s.lfsr[:15], s.lfsr[1:])
	s.lfsr[15] = v
}

// Word returns the next keystream word.
func (s *State) Word() uint32 {
	z := s.clockFSM() ^ s.lfsr[0]
	s.clockLFSR(0)
	return z
}

// Keystream returns the next n keystream words.
func (s *State) Keystream(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = s.Word()
	}
	return out
}
