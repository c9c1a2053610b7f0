package vector

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cryptomobile/internal/bits"
	"cryptomobile/internal/comp128"
	"cryptomobile/internal/keccak"
	"cryptomobile/internal/suite"
)

type Mismatch struct {
	Count    int    `json:"count"`
	Section  string `json:"section"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

type Result struct {
	Algorithm string     `json:"algorithm"`
	Total     int        `json:"total"`
	Passed    int        `json:"passed"`
	Failed    int        `json:"failed"`
	Failures  []Mismatch `json:"failures,omitempty"`
}

// MaxWork bounds the bytes the engine may process for one Generate or
// Validate call. Every MCT round counts.
const MaxWork = 1 << 29

// ErrTooMuchWork wraps bits.ErrResource.
var ErrTooMuchWork = fmt.Errorf("%w: vector set exceeds the work limit", bits.ErrResource)

func recordBytes(section string, r Record) int64 {
	switch section {
	case SectionAuth:
		return comp128.KiSize + comp128.RandSize
	case SectionPermute:
		return keccak.StateSize
	}
	if r.Length <= 0 {
		return 0
	}
	return min((int64(r.Length)+7)/8, MaxWork+1)
}

// Work is the number of bytes the engine processes to answer every record
// of s. It stops counting once MaxWork is exceeded.
func Work(s Set) int64 {
	rounds := int64(1)
	if s.TestMode == MCT && s.Rounds > 0 {
		rounds = min(int64(s.Rounds), MaxWork+1)
	}
	sections := []struct {
		name    string
		rows    []Record
		chained bool
	}{
		{SectionEncrypt, s.Encrypt, true},
		{SectionDecrypt, s.Decrypt, true},
		{SectionMAC, s.MAC, false},
		{SectionAuth, s.Auth, false},
		{SectionPermute, s.Permute, true},
	}
	var total int64
	for _, sec := range sections {
		n := int64(1)
		if sec.chained {
			n = rounds
		}
		for _, r := range sec.rows {
			total += recordBytes(sec.name, r) * n
			if total > MaxWork {
				return total
			}
		}
	}
	return total
}

func checkWork(s Set) error {
	if w := Work(s); w > MaxWork {
		return fmt.Errorf("%w: %s needs more than %d bytes", ErrTooMuchWork, s.Algorithm, int64(MaxWork))
	}
	return nil
}

func decodeHex(field, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return b, nil
}

func params(r Record) (suite.Params, error) {
	key, err := decodeHex("key", r.Key)
	if err != nil {
		return suite.Params{}, err
	}
	return suite.Params{Key: key, Count: r.Counter, Bearer: r.Bearer, Direction: r.Direction, Fresh: r.Fresh}, nil
}

// cipherChain applies the cipher rounds times, bumping COUNTER each round.
func cipherChain(eng suite.Engine, alg string, r Record, inHex string, rounds int) (string, error) {
	p, err := params(r)
	if err != nil {
		return "", err
	}
	data, err := decodeHex("input", inHex)
	if err != nil {
		return "", err
	}
	for i := 0; i < rounds; i++ {
		p.Count = r.Counter + uint32(i)
		if data, err = eng.Cipher(alg, p, bits.Message{Data: data, Bits: r.Length}); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(data), nil
}

func computeMAC(eng suite.Engine, alg string, r Record) (string, error) {
	p, err := params(r)
	if err != nil {
		return "", err
	}
	msg, err := decodeHex("message", r.Message)
	if err != nil {
		return "", err
	}
	mac, err := eng.MAC(alg, p, bits.Message{Data: msg, Bits: r.Length})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(mac[:]), nil
}

func computeAuth(eng suite.Engine, alg string, r Record) (sres, kc string, err error) {
	v, err := comp128.ParseVariant(alg)
	if err != nil {
		return "", "", err
	}
	ki, err := decodeHex("ki", r.Ki)
	if err != nil {
		return "", "", err
	}
	rnd, err := decodeHex("rand", r.Rand)
	if err != nil {
		return "", "", err
	}
	s, k, err := eng.Auth(ki, rnd, v)
	if err != nil {
		return "", "", err
	}
	return hex.EncodeToString(s[:]), hex.EncodeToString(k[:]), nil
}

func permuteChain(eng suite.Engine, inHex string, rounds int) (string, error) {
	st, err := decodeHex("input", inHex)
	if err != nil {
		return "", err
	}
	for i := 0; i < rounds; i++ {
		if st, err = eng.Permute(st); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(st), nil
}

// Parse reads the text layout written by Set.String. Unknown keys are
// skipped; malformed values are reported with their line number.
func Parse(r io.Reader) (Set, error) {
	var s Set
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 16<<20)
	section := ""
	var cur *Record

	flush := func() {
		if cur == nil {
			return
		}
		switch section {
		case SectionEncrypt:
			s.Encrypt = append(s.Encrypt, *cur)
		case SectionDecrypt:
			s.Decrypt = append(s.Decrypt, *cur)
		case SectionMAC:
			s.MAC = append(s.MAC, *cur)
		case SectionAuth:
			s.Auth = append(s.Auth, *cur)
		case SectionPermute:
			s.Permute = append(s.Permute, *cur)
		}
		cur = nil
	}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		bad := func(format string, args ...any) (Set, error) {
			return Set{}, fmt.Errorf("%w: line %d: %s", ErrMalformed, lineNo, fmt.Sprintf(format, args...))
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			flush()
			section = strings.ToUpper(strings.Trim(line, "[]"))
			switch section {
			case SectionEncrypt, SectionDecrypt, SectionMAC, SectionAuth, SectionPermute:
			default:
				return bad("unknown section %q", section)
			}
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)

		if section == "" {
			switch k {
			case "ALGORITHM":
				s.Algorithm = strings.ToUpper(v)
			case "FAMILY":
				s.Family = suite.Kind(strings.ToLower(v))
			case "TEST":
				s.TestMode = TestMode(strings.ToUpper(v))
			case "ROUNDS":
				n, err := strconv.Atoi(v)
				if err != nil || n < 0 || n > MaxMCTRounds {
					return bad("rounds %q", v)
				}
				s.Rounds = n
			}
			continue
		}

		if k == "COUNT" {
			flush()
			n, err := strconv.Atoi(v)
			if err != nil {
				return bad("count %q", v)
			}
			cur = &Record{Count: n}
			continue
		}
		if cur == nil {
			return bad("%s before COUNT", k)
		}

		var err error
		switch k {
		case "COUNTER":
			cur.Counter, err = parseWord(v)
		case "FRESH":
			cur.Fresh, err = parseWord(v)
		case "BEARER":
			cur.Bearer, err = parseSmall(v)
		case "DIRECTION":
			cur.Direction, err = parseSmall(v)
		case "LENGTH":
			cur.Length, err = strconv.Atoi(v)
		case "KEY":
			cur.Key, err = normHex(v)
		case "PLAINTEXT":
			cur.Plaintext, err = normHex(v)
		case "CIPHERTEXT":
			cur.Ciphertext, err = normHex(v)
		case "MESSAGE":
			cur.Message, err = normHex(v)
		case "MAC":
			cur.MAC, err = normHex(v)
		case "KI":
			cur.Ki, err = normHex(v)
		case "RAND":
			cur.Rand, err = normHex(v)
		case "SRES":
			cur.SRES, err = normHex(v)
		case "KC":
			cur.Kc, err = normHex(v)
		case "INPUT":
			cur.Input, err = normHex(v)
		case "OUTPUT":
			cur.Output, err = normHex(v)
		}
		if err != nil {
			return bad("%s: %v", k, err)
		}
	}
	flush()
	if err := sc.Err(); err != nil {
		return Set{}, err
	}
	if s.Algorithm == "" {
		return Set{}, fmt.Errorf("%w: missing Algorithm header", ErrMalformed)
	}
	alg, err := suite.Lookup(s.Algorithm)
	if err != nil {
		return Set{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	s.Family = alg.Kind
	if s.TestMode == "" {
		s.TestMode = KAT
	}
	return s, nil
}

func parseWord(v string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(v), "0x"), 16, 32)
	return uint32(n), err
}

func parseSmall(v string) (uint32, error) {
	n, err := strconv.ParseUint(v, 10, 32)
	return uint32(n), err
}

func normHex(v string) (string, error) {
	v = strings.ToLower(v)
	if _, err := hex.DecodeString(v); err != nil {
		return "", err
	}
	return v, nil
}

// Validate recomputes every record with eng and compares it with the answer
// the file carries. A record the engine rejects outright aborts validation,
// and a set whose Work exceeds MaxWork is refused before anything runs.
func Validate(eng suite.Engine, s Set) (Result, error) {
	res := Result{Algorithm: s.Algorithm, Total: s.Len()}
	rounds := 1
	if s.TestMode == MCT {
		if s.Rounds <= 0 || s.Rounds > MaxMCTRounds {
			return res, fmt.Errorf("%w: MCT rounds %d outside 1..%d", ErrMalformed, s.Rounds, MaxMCTRounds)
		}
		rounds = s.Rounds
	}
	if err := checkWork(s); err != nil {
		return res, err
	}
	check := func(section string, r Record, expected, got string) {
		if strings.EqualFold(expected, got) {
			res.Passed++
			return
		}
		res.Failed++
		res.Failures = append(res.Failures, Mismatch{Count: r.Count, Section: section, Expected: expected, Got: got})
	}
	wrap := func(section string, r Record, err error) error {
		return fmt.Errorf("%s COUNT=%d: %w", section, r.Count, err)
	}

	for _, r := range s.Encrypt {
		got, err := cipherChain(eng, s.Algorithm, r, r.Plaintext, rounds)
		if err != nil {
			return res, wrap(SectionEncrypt, r, err)
		}
		check(SectionEncrypt, r, r.Ciphertext, got)
	}
	for _, r := range s.Decrypt {
		got, err := cipherChain(eng, s.Algorithm, r, r.Ciphertext, rounds)
		if err != nil {
			return res, wrap(SectionDecrypt, r, err)
		}
		check(SectionDecrypt, r, r.Plaintext, got)
	}
	for _, r := range s.MAC {
		got, err := computeMAC(eng, s.Algorithm, r)
		if err != nil {
			return res, wrap(SectionMAC, r, err)
		}
		check(SectionMAC, r, r.MAC, got)
	}
	for _, r := range s.Auth {
		sres, kc, err := computeAuth(eng, s.Algorithm, r)
		if err != nil {
			return res, wrap(SectionAuth, r, err)
		}
		check(SectionAuth, r, r.SRES+r.Kc, sres+kc)
	}
	for _, r := range s.Permute {
		got, err := permuteChain(eng, r.Input, rounds)
		if err != nil {
			return res, wrap(SectionPermute, r, err)
		}
		check(SectionPermute, r, r.Output, got)
	}
	return res, nil
}
