// Package kasumi implements the KASUMI 64-bit block cipher together with the
// 3GPP f8 confidentiality and f9 integrity modes built on it.
package kasumi

import (
	"encoding/binary"

	"cryptomobile/internal/bits"
)

const (
	KeySize   = 16
	BlockSize = 8
)

var keyConst = [8]uint16{0x0123, 0x4567, 0x89ab, 0xcdef, 0xfedc, 0xba98, 0x7654, 0x3210}

// RoundKeys is the expanded key schedule. It is immutable once derived and
// safe to share between goroutines.
type RoundKeys struct {
	kl1, kl2      [8]uint16
	ko1, ko2, ko3 [8]uint16
	ki1, ki2, ki3 [8]uint16
}

func rol16(a uint16, n uint) uint16 { return a<<n | a>>(16-n) }

// DeriveRoundKeys expands a 128-bit key.
func DeriveRoundKeys(key []byte) (*RoundKeys, error) {
	if err := bits.CheckKey("kasumi key", key, KeySize); err != nil {
		return nil, err
	}
	var k, kp [8]uint16
	for i := range k {
		k[i] = binary.BigEndian.Uint16(key[2*i:])
		kp[i] = k[i] ^ keyConst[i]
	}

	rk := new(RoundKeys)
	for n := 0; n < 8; n++ {
		rk.kl1[n] = rol16(k[n], 1)
		rk.kl2[n] = kp[(n+2)&7]
		rk.ko1[n] = rol16(k[(n+1)&7], 5)
		rk.ko2[n] = rol16(k[(n+5)&7], 8)
		rk.ko3[n] = rol16(k[(n+6)&7], 13)
		rk.ki1[n] = kp[(n+4)&7]
		rk.ki2[n] = kp[(n+3)&7]
		rk.ki3[n] = kp[(n+7)&7]
	}
	return rk, nil
}

func fi(in, subkey uint16) uint16 {
	nine := in >> 7
	seven := in & 0x7f

	nine = s9[nine] ^ seven
	seven = s7[seven] ^ (nine & 0x7f)

	seven ^= subkey >> 9
	nine ^= subkey & 0x1ff

	nine = s9[nine] ^ seven
	seven = s7[seven] ^ (nine & 0x7f)

	return seven<<9 | nine
}

func (rk *RoundKeys) fo(in uint32, n int) uint32 {
	l := uint16(in >> 16)
	r := uint16(in)

	l = fi(l^rk.ko1[n], rk.ki1[n]) ^ r
	r = fi(r^rk.ko2[n], rk.ki2[n]) ^ l
	l = fi(l^rk.ko3[n], rk.ki3[n]) ^ r

	return uint32(r)<<16 | uint32(l)
}

func (rk *RoundKeys) fl(in uint32, n int) uint32 {
	l := uint16(in >> 16)
	r := uint16(in)

	r ^= rol16(l&rk.kl1[n], 1)
	l ^= rol16(r|rk.kl2[n], 1)

	return uint32(l)<<16 | uint32(r)
}

// EncryptBlock enciphers one 64-bit block. KASUMI is only ever used in the
// forward direction, so there is no decrypt counterpart.
func (rk *RoundKeys) EncryptBlock(block uint64) uint64 {
	left := uint32(block >> 32)
	right := uint32(block)
	for n := 0; n < 8; n += 2 {
		right ^= rk.fo(rk.fl(left, n), n)
		left ^= rk.fl(rk.fo(right, n+1), n+1)
	}
	return uint64(left)<<32 | uint64(right)
}

// Encrypt enciphers the first block of src into dst.
func (rk *RoundKeys) Encrypt(dst, src []byte) {
	binary.BigEndian.PutUint64(dst, rk.EncryptBlock(binary.BigEndian.Uint64(src)))
}

func modifiedKey(key []byte, m byte) []byte {
	out := make([]byte, len(key))
	for i, b := range key {
		out[i] = b ^ m
	}
	return out
}
