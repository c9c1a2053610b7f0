// Package bits holds the bit-addressed message type and the error taxonomy
// shared by every primitive in the engine.
package bits

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrInvalidLength    = errors.New("invalid length")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidBearer    = errors.New("invalid bearer")
	ErrShortBuffer      = errors.New("buffer shorter than bit length")
	ErrResource         = errors.New("request exceeds resource limit")
)

// DefaultMaxBits bounds a single message. Go allocation cannot fail softly,
// so oversized requests are refused up front instead.
const DefaultMaxBits = 1 << 26

// LengthError reports a key, IV or state of the wrong size.
type LengthError struct {
	What string
	Got  int
	Want int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: got %d bytes, want %d", e.What, e.Got, e.Want)
}

func (e *LengthError) Unwrap() error { return ErrInvalidLength }

// CheckKey verifies len(b) == n.
func CheckKey(what string, b []byte, n int) error {
	if len(b) != n {
		return &LengthError{What: what, Got: len(b), Want: n}
	}
	return nil
}

func CheckDirection(d uint32) error {
	if d > 1 {
		return fmt.Errorf("direction %d: %w", d, ErrInvalidDirection)
	}
	return nil
}

func CheckBearer(b uint32) error {
	if b > 31 {
		return fmt.Errorf("bearer %d: %w", b, ErrInvalidBearer)
	}
	return nil
}

// ByteLen returns ceil(n/8).
func ByteLen(n int) int { return (n + 7) / 8 }

// Message is a bit string of Bits bits stored MSB-first in Data.
// Bits past Bits in the last byte carry no meaning.
type Message struct {
	Data []byte
	Bits int
}

func NewMessage(data []byte, nbits int) (Message, error) {
	m := Message{Data: data, Bits: nbits}
	return m, m.Validate()
}

// FromBytes wraps data as a byte-aligned message.
func FromBytes(data []byte) Message { return Message{Data: data, Bits: 8 * len(data)} }

func (m Message) Validate() error {
	if m.Bits < 0 {
		return fmt.Errorf("bit length %d: %w", m.Bits, ErrInvalidLength)
	}
	if len(m.Data) < ByteLen(m.Bits) {
		return fmt.Errorf("%d bytes for %d bits: %w", len(m.Data), m.Bits, ErrShortBuffer)
	}
	return nil
}

// Bit returns bit i (0 is the MSB of Data[0]).
func (m Message) Bit(i int) uint32 {
	return uint32(m.Data[i>>3]>>(7-uint(i&7))) & 1
}

// Blocks returns the number of 64-bit blocks covering the message.
func (m Message) Blocks() int { return (m.Bits + 63) / 64 }

// Block64 returns block i big-endian, with bits at or past Bits forced to zero.
func (m Message) Block64(i int) uint64 {
	var buf [8]byte
	start := 8 * i
	end := start + 8
	if n := ByteLen(m.Bits); end > n {
		end = n
	}
	if start < end {
		copy(buf[:], m.Data[start:end])
	}
	v := binary.BigEndian.Uint64(buf[:])
	if rem := m.Bits - 64*i; rem < 64 {
		if rem <= 0 {
			return 0
		}
		v &= ^uint64(0) << (64 - uint(rem))
	}
	return v
}

// Limit guards allocation sizes.
type Limit struct {
	MaxBits int
}

func (l Limit) Check(nbits int) error {
	max := l.MaxBits
	if max <= 0 {
		max = DefaultMaxBits
	}
	if nbits > max {
		return fmt.Errorf("%d bits over limit %d: %w", nbits, max, ErrResource)
	}
	return nil
}
