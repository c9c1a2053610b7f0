package zuc

import (
	"encoding/binary"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/mode"
)

func checkFrame(bearer, dir uint32) error {
	if err := bits.CheckBearer(bearer); err != nil {
		return err
	}
	return bits.CheckDirection(dir)
}

// EEA3 enciphers msg with IV = COUNT|BEARER|DIRECTION|0^26, twice over.
func EEA3(key []byte, count, bearer, dir uint32, msg bits.Message) ([]byte, error) {
	if err := checkFrame(bearer, dir); err != nil {
		return nil, err
	}
	var iv [IVSize]byte
	binary.BigEndian.PutUint32(iv[0:], count)
	iv[4] = byte(bearer<<3 | dir<<2)
	copy(iv[8:], iv[:8])

	z, err := New(key, iv[:])
	if err != nil {
		return nil, err
	}
	return mode.Encrypt(mode.Words(z), msg)
}

// EIA3 computes the 32-bit 128-EIA3 MAC.
func EIA3(key []byte, count, bearer, dir uint32, msg bits.Message) ([4]byte, error) {
	var mac [4]byte
	if err := checkFrame(bearer, dir); err != nil {
		return mac, err
	}
	if err := msg.Validate(); err != nil {
		return mac, err
	}
	var iv [IVSize]byte
	binary.BigEndian.PutUint32(iv[0:], count)
	iv[4] = byte(bearer << 3)
	copy(iv[8:], iv[:8])
	iv[8] ^= byte(dir << 7)
	iv[14] ^= byte(dir << 7)

	z, err := New(key, iv[:])
	if err != nil {
		return mac, err
	}
	t, err := mode.FoldMAC(z, msg)
	if err != nil {
		return mac, err
	}
	binary.BigEndian.PutUint32(mac[:], t)
	return mac, nil
}
