package comp128

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/go-quicktest/qt"

	"cryptomobile/internal/bits"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	qt.Assert(t, qt.IsNil(err))
	return b
}

var computeTests = []struct {
	ki, rand string
	v        Variant
	sres, kc string
}{
	{"465b5ce8b199b49faa5f0a2ee238a6bc", "23553cbe9637a89d218ae64dae47bf35", V1, "27c443ca", "e8d311d150017400"},
	{"465b5ce8b199b49faa5f0a2ee238a6bc", "23553cbe9637a89d218ae64dae47bf35", V2, "f7e96810", "63760252cb4ac000"},
	{"465b5ce8b199b49faa5f0a2ee238a6bc", "23553cbe9637a89d218ae64dae47bf35", V3, "f7e96810", "63760252cb4ac140"},
	{"000102030405060708090a0b0c0d0e0f", "00000000000000000000000000000000", V1, "61b569f5", "d9d9c2ed627d6800"},
	{"000102030405060708090a0b0c0d0e0f", "00000000000000000000000000000000", V2, "e3623b74", "1fda8b789ef2f400"},
	{"000102030405060708090a0b0c0d0e0f", "00000000000000000000000000000000", V3, "e3623b74", "1fda8b789ef2f5dd"},
	{"ffffffffffffffffffffffffffffffff", "0123456789abcdeffedcba9876543210", V1, "1857514b", "6c9195e0f26c1000"},
	{"ffffffffffffffffffffffffffffffff", "0123456789abcdeffedcba9876543210", V2, "0e5ad545", "a34f32e320ea4800"},
	{"ffffffffffffffffffffffffffffffff", "0123456789abcdeffedcba9876543210", V3, "0e5ad545", "a34f32e320ea485d"},
}

func TestCompute(t *testing.T) {
	for _, tt := range computeTests {
		t.Run(tt.v.String()+"/"+tt.ki[:8], func(t *testing.T) {
			sres, kc, err := Compute(unhex(t, tt.ki), unhex(t, tt.rand), tt.v)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(hex.EncodeToString(sres[:]), tt.sres))
			qt.Assert(t, qt.Equals(hex.EncodeToString(kc[:]), tt.kc))
		})
	}
}

// v1 and v2 leave the last ten bits of Kc at zero for every input; v3 does not.
func TestKcWeakBits(t *testing.T) {
	rnd := rand.New(rand.NewSource(128))
	ki := make([]byte, KiSize)
	rn := make([]byte, RandSize)
	v3Full := false
	for i := 0; i < 64; i++ {
		rnd.Read(ki)
		rnd.Read(rn)
		for _, v := range []Variant{V1, V2} {
			_, kc, err := Compute(ki, rn, v)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(kc[7], byte(0)))
			qt.Assert(t, qt.Equals(kc[6]&0x03, byte(0)))
		}
		_, kc, err := Compute(ki, rn, V3)
		qt.Assert(t, qt.IsNil(err))
		if kc[7] != 0 || kc[6]&0x03 != 0 {
			v3Full = true
		}
	}
	qt.Assert(t, qt.IsTrue(v3Full))
}

func TestV2V3ShareSRES(t *testing.T) {
	ki := unhex(t, "0f1e2d3c4b5a69788796a5b4c3d2e1f0")
	rn := unhex(t, "00112233445566778899aabbccddeeff")
	s2, k2, err := Compute(ki, rn, V2)
	qt.Assert(t, qt.IsNil(err))
	s3, k3, err := Compute(ki, rn, V3)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(s2, s3))
	qt.Assert(t, qt.DeepEquals(k2[:6], k3[:6]))
}

func TestComputeErrors(t *testing.T) {
	_, _, err := Compute(make([]byte, 15), make([]byte, 16), V1)
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidLength))
	_, _, err = Compute(make([]byte, 16), make([]byte, 17), V1)
	qt.Assert(t, qt.ErrorIs(err, bits.ErrInvalidLength))
	_, _, err = Compute(make([]byte, 16), make([]byte, 16), Variant(9))
	qt.Assert(t, qt.ErrorIs(err, ErrInvalidVariant))
}

func TestParseVariant(t *testing.T) {
	for in, want := range map[string]Variant{"v1": V1, "2": V2, "COMP128v3": V3, " comp128-2 ": V2} {
		got, err := ParseVariant(in)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(got, want))
	}
	_, err := ParseVariant("v4")
	qt.Assert(t, qt.ErrorIs(err, ErrInvalidVariant))
	qt.Assert(t, qt.Equals(Variant(7).String(), "Variant(7)"))
}

func TestTableShapes(t *testing.T) {
	for i := 0; i < 256; i++ {
		qt.Assert(t, qt.Equals(table0[256+i], table0[i^1]))
	}
	seen0 := map[byte]bool{}
	seen1 := map[byte]bool{}
	for i := 0; i < 256; i++ {
		seen0[v23Table0[i]] = true
		seen1[v23Table1[i]] = true
	}
	qt.Assert(t, qt.HasLen(seen0, 256))
	qt.Assert(t, qt.HasLen(seen1, 256))
	for _, v := range table4 {
		qt.Assert(t, qt.IsTrue(v < 16))
	}
}

func TestTableRanges(t *testing.T) {
	for j, tbl := range v1Tables {
		qt.Assert(t, qt.HasLen(tbl, 512>>j))
		for i, v := range tbl {
			qt.Assert(t, qt.IsTrue(int(v) < 256>>j), qt.Commentf("table %d entry %d", j, i))
		}
	}
}

// Any edit to the tables changes these digests.
func TestTableDigests(t *testing.T) {
	tests := []struct {
		name string
		tbl  []byte
		sum  string
	}{
		{"table0", table0[:], "5ba97357fe211013a64b9a83586170b28f2b63b5d6179966f781c74a0ce0f6c7"},
		{"table1", table1[:], "cd20e97a066f2a074d7dd7c973743709b4f4ed223deff49b934c6247c922695d"},
		{"table2", table2[:], "352fca45074e105d934ddb5a56a5143f8b33b832cc1041a1e08145f329e874df"},
		{"table3", table3[:], "8dee3cbf687d154aec7662e6a06508fd194dede2772c63357918fc43952bf2e0"},
		{"table4", table4[:], "a1af174970f4055f761231856e941e6a272c60ec8cab97f9ba49a4ed8b0308ae"},
		{"v23Table0", v23Table0[:], "1b294c0a50e2947b2090035dde0fd2c39b1114bff1fb70c4c292edd92ef04fe7"},
		{"v23Table1", v23Table1[:], "f061e1679c4022682cd8b6d38de28a38e43ac3115d918bc410721a5c3a95846c"},
	}
	for _, tt := range tests {
		sum := sha256.Sum256(tt.tbl)
		qt.Assert(t, qt.Equals(hex.EncodeToString(sum[:]), tt.sum), qt.Commentf("%s", tt.name))
	}
}
