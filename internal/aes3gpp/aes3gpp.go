// Package aes3gpp implements the AES-based 128-EEA2 and 128-EIA2 algorithms.
package aes3gpp

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"github.com/aead/cmac"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/mode"
)

const (
	KeySize = 16
	MACSize = 4
)

func newBlock(key []byte) (cipher.Block, error) {
	if err := bits.CheckKey("aes key", key, KeySize); err != nil {
		return nil, err
	}
	return aes.NewCipher(key)
}

func checkFrame(bearer, dir uint32) error {
	if err := bits.CheckBearer(bearer); err != nil {
		return err
	}
	return bits.CheckDirection(dir)
}

// header returns COUNT|BEARER|DIRECTION|0^26.
func header(count, bearer, dir uint32) [8]byte {
	var h [8]byte
	binary.BigEndian.PutUint32(h[:], count)
	h[4] = byte(bearer<<3 | dir<<2)
	return h
}

type ctrStream struct{ s cipher.Stream }

func (c ctrStream) BlockSize() int { return aes.BlockSize }

func (c ctrStream) NextBlock(dst []byte) {
	for i := range dst {
		dst[i] = 0
	}
	c.s.XORKeyStream(dst, dst)
}

// EEA2 is AES-128 in counter mode with T1 = COUNT|BEARER|DIRECTION|0^90.
func EEA2(key []byte, count, bearer, dir uint32, msg bits.Message) ([]byte, error) {
	if err := checkFrame(bearer, dir); err != nil {
		return nil, err
	}
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	var iv [aes.BlockSize]byte
	h := header(count, bearer, dir)
	copy(iv[:], h[:])
	return mode.Encrypt(ctrStream{cipher.NewCTR(block, iv[:])}, msg)
}

// EIA2 is AES-CMAC over COUNT|BEARER|DIRECTION|0^26|MESSAGE, truncated to
// 32 bits.
func EIA2(key []byte, count, bearer, dir uint32, msg bits.Message) ([MACSize]byte, error) {
	var mac [MACSize]byte
	if err := checkFrame(bearer, dir); err != nil {
		return mac, err
	}
	if err := msg.Validate(); err != nil {
		return mac, err
	}
	block, err := newBlock(key)
	if err != nil {
		return mac, err
	}

	h := header(count, bearer, dir)
	n := bits.ByteLen(msg.Bits)
	m := make([]byte, 0, len(h)+n)
	m = append(m, h[:]...)
	m = append(m, msg.Data[:n]...)

	if msg.Bits%8 == 0 {
		sum, err := cmac.Sum(m, block, MACSize)
		if err != nil {
			return mac, fmt.Errorf("cmac: %w", err)
		}
		copy(mac[:], sum)
		return mac, nil
	}
	sum := bitCMAC(block, m, 64+msg.Bits)
	copy(mac[:], sum[:MACSize])
	return mac, nil
}
