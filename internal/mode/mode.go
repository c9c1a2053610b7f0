// Package mode implements the confidentiality and integrity modes shared by
// the f8/EEA and f9/EIA algorithms. A primitive plugs in through Keystream
// or WordSource; the bit-length rules live here once.
package mode

import (
	"encoding/binary"
	"fmt"

	"cryptomobile/internal/bits"
)

// Keystream produces keystream blocks of a fixed size, one at a time.
type Keystream interface {
	BlockSize() int
	NextBlock(dst []byte)
}

// WordSource produces a keystream one 32-bit word at a time.
type WordSource interface {
	Word() uint32
}

type words struct{ src WordSource }

// Words adapts a WordSource to a 4-byte big-endian Keystream.
func Words(src WordSource) Keystream { return words{src} }

func (w words) BlockSize() int { return 4 }

func (w words) NextBlock(dst []byte) { binary.BigEndian.PutUint32(dst, w.src.Word()) }

// XOR writes msg XOR keystream into dst for exactly msg.Bits bits. The
// unused low bits of the last byte are copied from msg unchanged. Nothing is
// written if validation fails. dst may alias msg.Data.
func XOR(dst []byte, ks Keystream, msg bits.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	n := bits.ByteLen(msg.Bits)
	if len(dst) < n {
		return fmt.Errorf("output %d bytes, need %d: %w", len(dst), n, bits.ErrShortBuffer)
	}
	if n == 0 {
		return nil
	}
	last := msg.Data[n-1]

	bs := ks.BlockSize()
	buf := make([]byte, bs)
	for off := 0; off < n; off += bs {
		ks.NextBlock(buf)
		end := off + bs
		if end > n {
			end = n
		}
		for i := off; i < end; i++ {
			dst[i] = msg.Data[i] ^ buf[i-off]
		}
	}

	if r := msg.Bits % 8; r != 0 {
		keep := byte(0xff) >> uint(r)
		dst[n-1] = dst[n-1]&^keep | last&keep
	}
	return nil
}

// Encrypt is XOR into a freshly allocated buffer of ceil(msg.Bits/8) bytes.
func Encrypt(ks Keystream, msg bits.Message) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, bits.ByteLen(msg.Bits))
	if err := XOR(out, ks, msg); err != nil {
		return nil, err
	}
	return out, nil
}

// FoldMAC is the bitwise integrity accumulator used by EIA3. For every set
// message bit i it XORs the 32-bit keystream window starting at bit i, then
// the window at bit L, then the word at index ceil(L/32)+1.
func FoldMAC(src WordSource, msg bits.Message) (uint32, error) {
	if err := msg.Validate(); err != nil {
		return 0, err
	}
	hi, lo := src.Word(), src.Word()
	window := func(s uint) uint32 {
		if s == 0 {
			return hi
		}
		return hi<<s | lo>>(32-s)
	}

	var t uint32
	for i := 0; i < msg.Bits; i++ {
		if i > 0 && i%32 == 0 {
			hi, lo = lo, src.Word()
		}
		if msg.Bit(i) == 1 {
			t ^= window(uint(i % 32))
		}
	}
	if msg.Bits > 0 && msg.Bits%32 == 0 {
		hi, lo = lo, src.Word()
	}
	t ^= window(uint(msg.Bits % 32))

	if msg.Bits%32 == 0 {
		return t ^ lo, nil
	}
	return t ^ src.Word(), nil
}
