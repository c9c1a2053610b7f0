// Package zuc implements the ZUC stream cipher and the 128-EEA3/128-EIA3
// algorithms built on it.
package zuc

import (
	"cryptomobile/internal/bits"
)

const (
	KeySize = 16
	IVSize  = 16
)

// State is a keyed ZUC generator. Each operation owns its own State.
type State struct {
	s              [16]uint32
	r1, r2         uint32
	x0, x1, x2, x3 uint32
}

// New loads key and IV and runs the 32 initialisation rounds plus the one
// discarded work-mode round.
func New(key, iv []byte) (*State, error) {
	if err := bits.CheckKey("zuc key", key, KeySize); err != nil {
		return nil, err
	}
	if err := bits.CheckKey("zuc iv", iv, IVSize); err != nil {
		return nil, err
	}
	z := &State{}
	for i := 0; i < 16; i++ {
		z.s[i] = uint32(key[i])<<23 | ekd[i]<<8 | uint32(iv[i])
	}
	for i := 0; i < 32; i++ {
		z.reorganize()
		w := z.f()
		z.lfsrInit(w >> 1)
	}
	z.reorganize()
	z.f()
	z.lfsrWork()
	return z, nil
}

// addM is addition modulo 2^31-1.
func addM(a, b uint32) uint32 {
	c := a + b
	return (c & 0x7fffffff) + (c >> 31)
}

func rot31(a uint32, k uint) uint32 {
	return (a<<k | a>>(31-k)) & 0x7fffffff
}

func rotl(a uint32, k uint) uint32 { return a<<k | a>>(32-k) }

func l1(x uint32) uint32 { return x ^ rotl(x, 2) ^ rotl(x, 10) ^ rotl(x, 18) ^ rotl(x, 24) }
func l2(x uint32) uint32 { return x ^ rotl(x, 8) ^ rotl(x, 14) ^ rotl(x, 22) ^ rotl(x, 30) }

func sbox(x uint32) uint32 {
	return uint32(sbox0[x>>24])<<24 | uint32(sbox1[x>>16&0xff])<<16 |
		uint32(sbox0[x>>8&0xff])<<8 | uint32(sbox1[x&0xff])
}

func (z *State) feedback() uint32 {
	s := &z.s
	v := s[0]
	v = addM(v, rot31(s[0], 8))
	v = addM(v, rot31(s[4], 20))
	v = addM(v, rot31(s[10], 21))
	v = addM(v, rot31(s[13], 17))
	v = addM(v, rot31(s[15], 15))
	return v
}

func (z *State) push(v uint32) {
	if v == 0 {
		v = 0x7fffffff
	}
	copy(z.s[:15], z.s[1:])
	z.s[15] = v
}

func (z *State) lfsrInit(u uint32) { z.push(addM(z.feedback(), u)) }
func (z *State) lfsrWork()         { z.push(z.feedback()) }

func (z *State) reorganize() {
	s := &z.s
	z.x0 = (s[15]&0x7fff8000)<<1 | s[14]&0xffff
	z.x1 = (s[11]&0xffff)<<16 | s[9]>>15
	z.x2 = (s[7]&0xffff)<<16 | s[5]>>15
	z.x3 = (s[2]&0xffff)<<16 | s[0]>>15
}

func (z *State) f() uint32 {
	w := (z.x0 ^ z.r1) + z.r2
	w1 := z.r1 + z.x1
	w2 := z.r2 ^ z.x2
	z.r1 = sbox(l1(w1<<16 | w2>>16))
	z.r2 = sbox(l2(w2<<16 | w1>>16))
	return w
}

// Word returns the next keystream word.
func (z *State) Word() uint32 {
	z.reorganize()
	w := z.f() ^ z.x3
	z.lfsrWork()
	return w
}

// Keystream returns the next n keystream words.
func (z *State) Keystream(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = z.Word()
	}
	return out
}
