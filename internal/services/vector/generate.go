package vector

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/comp128"
	"cryptomobile/internal/keccak"
	"cryptomobile/internal/suite"
)

const (
	keyBytes = 16
	mctBits  = 128
)

type GenParams struct {
	Algorithm string `json:"algorithm"`
	// Test is KAT, MMT or MCT (case-insensitive, KAT when empty).
	Test string `json:"test"`
	// Count is the number of MMT or MCT cases. KAT sets ignore it.
	Count int `json:"count"`
	// Rounds is the MCT chain length.
	Rounds int `json:"rounds"`
	// IncludeExpected fills in the answers; without it the set is a request
	// file for the implementation under test.
	IncludeExpected bool `json:"include_expected"`
	// Rand overrides crypto/rand, mostly for tests.
	Rand io.Reader `json:"-"`
	// Engine computes the answers; the zero value applies the default limit.
	Engine suite.Engine `json:"-"`
}

// Generate builds a vector set.
//
// KAT: the published vectors for the algorithm.
//
// MMT: Count random cases whose LENGTH grows with COUNT and is mostly not a
// multiple of 8.
//
// MCT: Count chains of Rounds iterations. Ciphers feed each output into the
// next input with COUNTER incremented per round; KECCAK-P1600 iterates the
// permutation. MAC and AUTH algorithms have no MCT.
func Generate(p GenParams) (Set, error) {
	alg, err := suite.Lookup(p.Algorithm)
	if err != nil {
		return Set{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	tmode := TestMode(strings.ToUpper(strings.TrimSpace(p.Test)))
	if tmode == "" {
		tmode = KAT
	}
	if p.Count < 0 || p.Count > MaxCount {
		return Set{}, fmt.Errorf("%w: count %d outside 0..%d", ErrInvalidParams, p.Count, MaxCount)
	}
	if p.Rounds < 0 || p.Rounds > MaxMCTRounds {
		return Set{}, fmt.Errorf("%w: rounds %d outside 0..%d", ErrInvalidParams, p.Rounds, MaxMCTRounds)
	}
	g := generator{eng: p.Engine, alg: alg, expected: p.IncludeExpected, rand: p.Rand}
	if g.rand == nil {
		g.rand = rand.Reader
	}
	out := Set{Algorithm: alg.Name, Family: alg.Kind, TestMode: tmode}

	var rows []Record
	switch tmode {
	case KAT:
		rows = g.kat()
	case MMT:
		n := p.Count
		if n == 0 {
			n = DefaultMMTCount
		}
		if rows, err = g.mmt(n); err != nil {
			return Set{}, err
		}
	case MCT:
		if alg.Kind != suite.KindCipher && alg.Kind != suite.KindPermutation {
			return Set{}, fmt.Errorf("%w: no MCT for %s", ErrInvalidParams, alg.Name)
		}
		n := p.Count
		if n == 0 {
			n = 1
		}
		out.Rounds = p.Rounds
		if out.Rounds == 0 {
			out.Rounds = DefaultMCTRounds
		}
		if rows, err = g.random(n, func(int) int { return mctBits }); err != nil {
			return Set{}, err
		}
	default:
		return Set{}, fmt.Errorf("%w: unknown test mode %q", ErrInvalidParams, p.Test)
	}
	for i := range rows {
		rows[i].Count = i
	}
	if err := checkWork(g.layout(out, rows)); err != nil {
		return Set{}, err
	}
	if err := g.fill(&out, rows); err != nil {
		return Set{}, err
	}
	return out, nil
}

type generator struct {
	eng      suite.Engine
	alg      suite.Algorithm
	expected bool
	rand     io.Reader
}

func (g generator) kat() []Record {
	var src []Record
	switch g.alg.Kind {
	case suite.KindCipher:
		src = katByCipher[g.alg.Name]
	case suite.KindMAC:
		src = katByMAC[g.alg.Name]
	case suite.KindAuth:
		src = katAuth
	case suite.KindPermutation:
		src = katPermute
	}
	return append([]Record(nil), src...)
}

// layout places rows in the sections fill would give them, without answers.
func (g generator) layout(out Set, rows []Record) Set {
	switch g.alg.Kind {
	case suite.KindCipher:
		out.Encrypt, out.Decrypt = rows, rows
	case suite.KindMAC:
		out.MAC = rows
	case suite.KindAuth:
		out.Auth = rows
	case suite.KindPermutation:
		out.Permute = rows
	}
	return out
}

func (g generator) mmt(n int) ([]Record, error) {
	return g.random(n, func(i int) int { return 61*(i+1) + i%3 })
}

func (g generator) bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(g.rand, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (g generator) word() (uint32, error) {
	b, err := g.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// random draws n input records; length(i) gives the bit length of case i.
func (g generator) random(n int, length func(int) int) ([]Record, error) {
	rows := make([]Record, n)
	for i := range rows {
		r := &rows[i]
		switch g.alg.Kind {
		case suite.KindAuth:
			ki, err := g.bytes(comp128.KiSize)
			if err != nil {
				return nil, err
			}
			rnd, err := g.bytes(comp128.RandSize)
			if err != nil {
				return nil, err
			}
			r.Ki, r.Rand = hex.EncodeToString(ki), hex.EncodeToString(rnd)
			continue
		case suite.KindPermutation:
			st, err := g.bytes(keccak.StateSize)
			if err != nil {
				return nil, err
			}
			r.Input = hex.EncodeToString(st)
			continue
		}

		key, err := g.bytes(keyBytes)
		if err != nil {
			return nil, err
		}
		frame, err := g.bytes(9)
		if err != nil {
			return nil, err
		}
		r.Key = hex.EncodeToString(key)
		r.Counter = binary.BigEndian.Uint32(frame)
		r.Bearer = uint32(frame[4] & 0x1f)
		r.Direction = uint32(frame[4] >> 7)
		if g.alg.UsesFresh {
			r.Fresh = binary.BigEndian.Uint32(frame[5:])
		}
		r.Length = length(i)
		data, err := g.bytes(bits.ByteLen(r.Length))
		if err != nil {
			return nil, err
		}
		if g.alg.Kind == suite.KindMAC {
			r.Message = hex.EncodeToString(data)
		} else {
			r.Plaintext = hex.EncodeToString(data)
		}
	}
	return rows, nil
}

// fill computes answers for every row in parallel and lays the rows out in
// the sections of the algorithm's family.
func (g generator) fill(out *Set, rows []Record) error {
	rounds := out.Rounds
	if rounds == 0 {
		rounds = 1
	}
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	answer := func(fn func() error) {
		if g.expected {
			eg.Go(fn)
		}
	}

	switch g.alg.Kind {
	case suite.KindCipher:
		enc := make([]Record, len(rows))
		dec := make([]Record, len(rows))
		for i, r := range rows {
			eg.Go(func() error {
				ct, err := cipherChain(g.eng, g.alg.Name, r, r.Plaintext, rounds)
				if err != nil {
					return fmt.Errorf("COUNT=%d: %w", r.Count, err)
				}
				// Decryption rows take the ciphertext as their input even in
				// request files.
				d := r
				d.Plaintext, d.Ciphertext = "", ct
				if g.expected {
					r.Ciphertext = ct
					if d.Plaintext, err = cipherChain(g.eng, g.alg.Name, d, ct, rounds); err != nil {
						return fmt.Errorf("COUNT=%d: %w", r.Count, err)
					}
				}
				enc[i], dec[i] = r, d
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
		out.Encrypt, out.Decrypt = enc, dec

	case suite.KindMAC:
		for i := range rows {
			answer(func() error {
				mac, err := computeMAC(g.eng, g.alg.Name, rows[i])
				if err != nil {
					return fmt.Errorf("COUNT=%d: %w", rows[i].Count, err)
				}
				rows[i].MAC = mac
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
		out.MAC = rows

	case suite.KindAuth:
		for i := range rows {
			answer(func() error {
				sres, kc, err := computeAuth(g.eng, g.alg.Name, rows[i])
				if err != nil {
					return fmt.Errorf("COUNT=%d: %w", rows[i].Count, err)
				}
				rows[i].SRES, rows[i].Kc = sres, kc
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
		out.Auth = rows

	case suite.KindPermutation:
		for i := range rows {
			answer(func() error {
				o, err := permuteChain(g.eng, rows[i].Input, rounds)
				if err != nil {
					return fmt.Errorf("COUNT=%d: %w", rows[i].Count, err)
				}
				rows[i].Output = o
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
		out.Permute = rows
	}
	return nil
}
