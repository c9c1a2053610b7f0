package kasumi

import (
	"encoding/binary"

	"cryptomobile/internal/bits"
)

// F9 computes the 32-bit f9 MAC over COUNT|FRESH|MESSAGE|DIRECTION|1|0*.
func F9(key []byte, count, fresh, dir uint32, msg bits.Message) ([4]byte, error) {
	var mac [4]byte
	if err := bits.CheckDirection(dir); err != nil {
		return mac, err
	}
	if err := msg.Validate(); err != nil {
		return mac, err
	}
	rk, err := DeriveRoundKeys(key)
	if err != nil {
		return mac, err
	}
	mk, err := DeriveRoundKeys(modifiedKey(key, 0xaa))
	if err != nil {
		return mac, err
	}

	a := rk.EncryptBlock(uint64(count)<<32 | uint64(fresh))
	b := a

	l := msg.Bits
	nb := (l + 2 + 63) / 64
	for i := 0; i < nb; i++ {
		blk := msg.Block64(i)
		if l/64 == i {
			blk |= uint64(dir) << (63 - uint(l%64))
		}
		if (l+1)/64 == i {
			blk |= 1 << (63 - uint((l+1)%64))
		}
		a = rk.EncryptBlock(a ^ blk)
		b ^= a
	}

	binary.BigEndian.PutUint32(mac[:], uint32(mk.EncryptBlock(b)>>32))
	return mac, nil
}
