package snow3g

import (
	"encoding/binary"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/mode"
)

func keyWords(key []byte) ([4]uint32, error) {
	var k [4]uint32
	if err := bits.CheckKey("snow3g key", key, KeySize); err != nil {
		return k, err
	}
	for i := 0; i < 4; i++ {
		k[3-i] = binary.BigEndian.Uint32(key[4*i:])
	}
	return k, nil
}

// F8 is UEA2: SNOW 3G keystream over IV = COUNT|BEARER|DIR|COUNT|BEARER|DIR.
func F8(key []byte, count, bearer, dir uint32, msg bits.Message) ([]byte, error) {
	if err := bits.CheckBearer(bearer); err != nil {
		return nil, err
	}
	if err := bits.CheckDirection(dir); err != nil {
		return nil, err
	}
	k, err := keyWords(key)
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	bd := bearer<<27 | dir<<26
	s := New(k, [4]uint32{bd, count, bd, count})
	return mode.Encrypt(mode.Words(s), msg)
}

// F9 is UIA2. For an empty message no block is folded and the MAC is z5.
func F9(key []byte, count, fresh, dir uint32, msg bits.Message) ([4]byte, error) {
	var mac [4]byte
	if err := bits.CheckDirection(dir); err != nil {
		return mac, err
	}
	k, err := keyWords(key)
	if err != nil {
		return mac, err
	}
	if err := msg.Validate(); err != nil {
		return mac, err
	}

	s := New(k, [4]uint32{fresh ^ dir<<15, count ^ dir<<31, fresh, count})
	z := s.Keystream(5)
	p := uint64(z[0])<<32 | uint64(z[1])
	q := uint64(z[2])<<32 | uint64(z[3])

	var eval uint64
	for i := 0; i < msg.Blocks(); i++ {
		eval = mul64(eval^msg.Block64(i), p, 0x1b)
	}
	eval ^= uint64(msg.Bits)
	eval = mul64(eval, q, 0x1b)

	binary.BigEndian.PutUint32(mac[:], uint32(eval>>32)^z[4])
	return mac, nil
}

// mul64 multiplies v by p in GF(2^64) reduced by x^64 + c.
func mul64(v, p, c uint64) uint64 {
	var r uint64
	for i := 0; i < 64; i++ {
		if p>>uint(i)&1 == 1 {
			r ^= v
		}
		if v&(1<<63) != 0 {
			v = v<<1 ^ c
		} else {
			v <<= 1
		}
	}
	return r
}
