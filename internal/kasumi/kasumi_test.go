package kasumi

import (
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"testing"

	cbkasumi "github.com/deatil/go-cryptobin/cipher/kasumi"
	"github.com/go-quicktest/qt"

	"cryptomobile/internal/bits"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	qt.Assert(t, qt.IsNil(err))
	return b
}

func TestEncryptBlock(t *testing.T) {
	tests := []struct {
		key string
		ct  string
	}{
		{"80000000000000000000000000000000", "4b58a771afc7e5e8"},
		{"00800000000000000000000000000000", "7eef113c95bb5a77"},
		{"00008000000000000000000000000000", "5f140686d7ad5a39"},
		{"00000000000000000000000000000001", "2e1491cf70aa465d"},
		{"00000000000000000000000000000100", "b54586f4ab9ae546"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			rk, err := DeriveRoundKeys(unhex(t, tt.key))
			qt.Assert(t, qt.IsNil(err))
			var out [BlockSize]byte
			rk.Encrypt(out[:], make([]byte, BlockSize))
			qt.Assert(t, qt.Equals(hex.EncodeToString(out[:]), tt.ct))
		})
	}
}

func TestEncryptBlockFixed(t *testing.T) {
	tests := []struct {
		name string
		key  string
		pt   uint64
		ct   uint64
	}{
		{"zero", "00000000000000000000000000000000", 0, 0xf54cfbf75f3b5699},
		{"35.203 set 1", "2bd6459f82c5b300952c49104881ff48", 0xea024714ad5c4d84, 0xdf1f9b251c0bf45f},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := unhex(t, tt.key)
			rk, err := DeriveRoundKeys(key)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(rk.EncryptBlock(tt.pt), tt.ct))

			ref, err := cbkasumi.NewCipher(key)
			qt.Assert(t, qt.IsNil(err))
			var pt, want [BlockSize]byte
			binary.BigEndian.PutUint64(pt[:], tt.pt)
			ref.Encrypt(want[:], pt[:])
			qt.Assert(t, qt.Equals(binary.BigEndian.Uint64(want[:]), tt.ct))
		})
	}
}

func TestEncryptMatchesCryptobin(t *testing.T) {
	rnd := rand.New(rand.NewSource(35))
	key := make([]byte, KeySize)
	pt := make([]byte, BlockSize)
	for i := 0; i < 200; i++ {
		rnd.Read(key)
		rnd.Read(pt)

		rk, err := DeriveRoundKeys(key)
		qt.Assert(t, qt.IsNil(err))
		ref, err := cbkasumi.NewCipher(key)
		qt.Assert(t, qt.IsNil(err))

		got := make([]byte, BlockSize)
		want := make([]byte, BlockSize)
		rk.Encrypt(got, pt)
		ref.Encrypt(want, pt)
		qt.Assert(t, qt.DeepEquals(got, want), qt.Commentf("key %x pt %x", key, pt))
	}
}

func TestDeriveRoundKeysBadKey(t *testing.T) {
	_, err := DeriveRoundKeys(make([]byte, 15))
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidLength))
}

var f8Tests = []struct {
	name   string
	key    string
	count  uint32
	bearer uint32
	dir    uint32
	nbits  int
	pt     string
	ct     string
}{
	{
		name:   "set1",
		key:    "2bd6459f82c5b300952c49104881ff48",
		count:  0x72a4f20f,
		bearer: 0x0c,
		dir:    1,
		nbits:  798,
		pt:     "7ec61272743bf1614726446a6c38ced166f6ca76eb5430044286346cef130f92922b03450d3a9975e5bd2ea0eb55ad8e1b199e3ec4316020e9a1b285e762795359b7bdfd39bef4b2484583d5afe082aee638bf5fd5a606193901a08f4ab41aab9b134880",
		// The last byte keeps the two unused plaintext bits.
		ct: "d1e2de70eef86c6964fb542bc2d460aabfaa10a4a093262b7d199e706fc2d4891553296910f3a973012682e41c4e2b02be2017b7253bbf9309de5819cb42e81956f4c99bc9765caf53b1d0bb8279826adbbc5522e915c120a618a5a7f5e897089339650c",
	},
	{
		name:   "set2",
		key:    "efa8b2229e720c2a7c36ea55e9605695",
		count:  0xe28bcf7b,
		bearer: 0x18,
		dir:    0,
		nbits:  510,
		pt:     "10111231e060253a43fd3f57e37607ab2827b599b6b1bbda37a8abcc5a8c550d1bfb2f494624fb50367fa36ce3bc68f11cf93b1510376b02130f812a9fa169d8",
		ct:     "3deacc7c15821caa89eecade9b5bd3614bd0c8419d710385ddbe5849ef1bac5ae8b14a5b0a6741521eb4e00bb9ecf3e9f7ccb9cae74152d7f4e2a034b6ea00ec",
	},
}

func TestF8(t *testing.T) {
	for _, tt := range f8Tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := bits.Message{Data: unhex(t, tt.pt), Bits: tt.nbits}
			ct, err := F8(unhex(t, tt.key), tt.count, tt.bearer, tt.dir, msg)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(hex.EncodeToString(ct), tt.ct))

			pt, err := F8(unhex(t, tt.key), tt.count, tt.bearer, tt.dir, bits.Message{Data: ct, Bits: tt.nbits})
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(hex.EncodeToString(pt), tt.pt))
		})
	}
}

func TestF8EmptyAndErrors(t *testing.T) {
	key := make([]byte, KeySize)
	ct, err := F8(key, 0, 0, 0, bits.Message{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ct, 0))

	_, err = F8(key, 0, 32, 0, bits.Message{})
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidBearer))
	_, err = F8(key, 0, 0, 2, bits.Message{})
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidDirection))
	_, err = F8(key[:8], 0, 0, 0, bits.Message{})
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidLength))
	_, err = F8(key, 0, 0, 0, bits.Message{Data: []byte{1}, Bits: 9})
	qt.Assert(t, qt.ErrorIs(err, bits.ErrShortBuffer))
}

func TestF9(t *testing.T) {
	key := unhex(t, "2bd6459f82c5b300952c49104881ff48")
	msg := bits.Message{Data: unhex(t, "6b227737296f393c8079353edc87e2e805d2ec49a4f2d8e0"), Bits: 189}
	mac, err := F9(key, 0x38a6f056, 0x05d2ec49, 0, msg)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(hex.EncodeToString(mac[:]), "f63bd72c"))

	// Bits past the length never reach the MAC.
	dirty := append([]byte(nil), msg.Data...)
	dirty[len(dirty)-1] |= 0x07
	mac2, err := F9(key, 0x38a6f056, 0x05d2ec49, 0, bits.Message{Data: dirty, Bits: 189})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(mac2, mac))
}

func TestF9Sensitivity(t *testing.T) {
	key := unhex(t, "2bd6459f82c5b300952c49104881ff48")
	data := unhex(t, "6b227737296f393c8079353edc87e2e805d2ec49a4f2d8e0")
	base, err := F9(key, 1, 2, 0, bits.Message{Data: data, Bits: 189})
	qt.Assert(t, qt.IsNil(err))

	variants := map[string]func() ([4]byte, error){
		"count": func() ([4]byte, error) { return F9(key, 3, 2, 0, bits.Message{Data: data, Bits: 189}) },
		"fresh": func() ([4]byte, error) { return F9(key, 1, 3, 0, bits.Message{Data: data, Bits: 189}) },
		"dir":   func() ([4]byte, error) { return F9(key, 1, 2, 1, bits.Message{Data: data, Bits: 189}) },
		"len":   func() ([4]byte, error) { return F9(key, 1, 2, 0, bits.Message{Data: data, Bits: 188}) },
		"key": func() ([4]byte, error) {
			k := append([]byte(nil), key...)
			k[15] ^= 1
			return F9(k, 1, 2, 0, bits.Message{Data: data, Bits: 189})
		},
	}
	for name, f := range variants {
		mac, err := f()
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Not(qt.Equals(mac, base)), qt.Commentf("%s", name))
	}

	empty, err := F9(key, 1, 2, 0, bits.Message{})
	qt.Assert(t, qt.IsNil(err))
	again, err := F9(key, 1, 2, 0, bits.Message{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(empty, again))
}
