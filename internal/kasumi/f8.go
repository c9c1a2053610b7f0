package kasumi

import (
	"encoding/binary"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/mode"
)

// Keystream is the f8 keystream generator for one (key, count, bearer,
// direction) tuple.
type Keystream struct {
	rk     *RoundKeys
	a      uint64
	ks     uint64
	blkcnt uint64
}

// NewKeystream sets up f8: A = KASUMI[K xor 0x55..](COUNT|BEARER|DIRECTION|0...).
func NewKeystream(key []byte, count, bearer, dir uint32) (*Keystream, error) {
	if err := bits.CheckBearer(bearer); err != nil {
		return nil, err
	}
	if err := bits.CheckDirection(dir); err != nil {
		return nil, err
	}
	rk, err := DeriveRoundKeys(key)
	if err != nil {
		return nil, err
	}
	mk, err := DeriveRoundKeys(modifiedKey(key, 0x55))
	if err != nil {
		return nil, err
	}
	iv := uint64(count)<<32 | uint64(bearer)<<27 | uint64(dir)<<26
	return &Keystream{rk: rk, a: mk.EncryptBlock(iv)}, nil
}

func (k *Keystream) BlockSize() int { return BlockSize }

func (k *Keystream) NextBlock(dst []byte) {
	k.ks = k.rk.EncryptBlock(k.a ^ k.ks ^ k.blkcnt)
	k.blkcnt++
	binary.BigEndian.PutUint64(dst, k.ks)
}

// F8 enciphers (or deciphers) msg.Bits bits of msg.
func F8(key []byte, count, bearer, dir uint32, msg bits.Message) ([]byte, error) {
	ks, err := NewKeystream(key, count, bearer, dir)
	if err != nil {
		return nil, err
	}
	return mode.Encrypt(ks, msg)
}
