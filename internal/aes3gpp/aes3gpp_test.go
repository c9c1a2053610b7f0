package aes3gpp

import (
	"crypto/aes"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/aead/cmac"
	"github.com/go-quicktest/qt"

	"cryptomobile/internal/bits"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	qt.Assert(t, qt.IsNil(err))
	return b
}

func TestEEA2(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		count  uint32
		bearer uint32
		dir    uint32
		nbits  int
		in     string
		out    string
	}{{
		name:   "248 bits",
		key:    "d3c5d592327fb11c4035c6680af8c6d1",
		count:  0x398a59b4,
		bearer: 0x15,
		dir:    1,
		nbits:  248,
		in:     "981ba6824c1bfb1ab485472029b71d808ce33e2cc3c0b5fc1f3de8a6dc66b1",
		out:    "e9fed8a63d155304d71df20bf3e82214b20ed7dad2f233dc3c22d7bdeeed8e",
	}, {
		name:   "304 bits",
		key:    "0a8b6bd8d9b08b08d64e32d1817777fb",
		count:  0x544d49cd,
		bearer: 0x04,
		dir:    0,
		nbits:  304,
		in:     "fd40a41d370a1f65745095687d47ba1d36d2349e23f644392c8ea9c49d40c13271aff264d0f2",
		out:    "75750d37b4bba2a4dedb34235bd68c6645acdaaca48138a3b0c471e2a7041a576423d2927287",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EEA2(unhex(t, tt.key), tt.count, tt.bearer, tt.dir, bits.Message{Data: unhex(t, tt.in), Bits: tt.nbits})
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(hex.EncodeToString(got), tt.out))
		})
	}
}

func TestEEA2PartialByte(t *testing.T) {
	key := unhex(t, "d3c5d592327fb11c4035c6680af8c6d1")
	in := unhex(t, "981ba6824c1bfb1ab485472029b71d808ce33e2cc3c0b5fc1f3de8a6dc66b1")
	full, err := EEA2(key, 0x398a59b4, 0x15, 1, bits.Message{Data: in, Bits: 248})
	qt.Assert(t, qt.IsNil(err))

	part, err := EEA2(key, 0x398a59b4, 0x15, 1, bits.Message{Data: in, Bits: 245})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(part[:30], full[:30]))
	qt.Assert(t, qt.Equals(part[30]&0xf8, full[30]&0xf8))
	qt.Assert(t, qt.Equals(part[30]&0x07, in[30]&0x07))
}

func TestEIA2(t *testing.T) {
	mac, err := EIA2(unhex(t, "d3c5d592327fb11c4035c6680af8c6d1"), 0x398a59b4, 0x1a, 1,
		bits.Message{Data: unhex(t, "484583d5afe082ae"), Bits: 64})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(hex.EncodeToString(mac[:]), "b93787e6"))
}

// The bit-granular CMAC must agree with the byte-oriented library whenever
// the length is a whole number of bytes.
func TestBitCMACMatchesLibrary(t *testing.T) {
	rnd := rand.New(rand.NewSource(4493))
	key := make([]byte, KeySize)
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 33, 64, 100} {
		rnd.Read(key)
		msg := make([]byte, n)
		rnd.Read(msg)
		block, err := aes.NewCipher(key)
		qt.Assert(t, qt.IsNil(err))

		want, err := cmac.Sum(msg, block, 16)
		qt.Assert(t, qt.IsNil(err))
		got := bitCMAC(block, msg, 8*n)
		qt.Assert(t, qt.DeepEquals(got[:], want), qt.Commentf("len=%d", n))
	}
}

func TestEIA2PartialByte(t *testing.T) {
	key := unhex(t, "2bd6459f82c5b300952c49104881ff48")
	a, err := EIA2(key, 0x38a6f056, 0x18, 0, bits.Message{Data: unhex(t, "3332346263393840"), Bits: 58})
	qt.Assert(t, qt.IsNil(err))
	b, err := EIA2(key, 0x38a6f056, 0x18, 0, bits.Message{Data: unhex(t, "333234626339387f"), Bits: 58})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(a, b))

	c, err := EIA2(key, 0x38a6f056, 0x18, 0, bits.Message{Data: unhex(t, "3332346263393840"), Bits: 57})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Not(qt.Equals(a, c)))
}

func TestErrors(t *testing.T) {
	key := make([]byte, KeySize)
	_, err := EEA2(key[:8], 0, 0, 0, bits.Message{})
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidLength))
	_, err = EEA2(key, 0, 40, 0, bits.Message{})
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidBearer))
	_, err = EIA2(key, 0, 0, 3, bits.Message{})
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidDirection))
	_, err = EIA2(key, 0, 0, 0, bits.Message{Data: []byte{0}, Bits: 12})
	qt.Assert(t, qt.ErrorIs(err, bits.ErrShortBuffer))
}
