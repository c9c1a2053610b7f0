// Package vector produces and checks conformance test-vector files for the
// 3GPP algorithms: KAT, MMT and MCT sets in a NIST-style text layout.
package vector

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"cryptomobile/internal/suite"
)

var (
	ErrInvalidParams = errors.New("invalid vector parameters")
	ErrMalformed     = errors.New("malformed vector file")
)

type TestMode string

const (
	KAT TestMode = "KAT"
	MMT TestMode = "MMT"
	MCT TestMode = "MCT"
)

const (
	DefaultMMTCount  = 10
	MaxCount         = 100
	DefaultMCTRounds = 1000
	MaxMCTRounds     = 100000
)

// Section tags used in the text layout.
const (
	SectionEncrypt = "ENCRYPT"
	SectionDecrypt = "DECRYPT"
	SectionMAC     = "MAC"
	SectionAuth    = "AUTH"
	SectionPermute = "PERMUTE"
)

// Record is one COUNT block. Which fields are meaningful depends on the
// section it sits in; binary values are lower-case hex.
type Record struct {
	Count int `json:"count"`

	Key        string `json:"key,omitempty"`
	Counter    uint32 `json:"counter"`
	Bearer     uint32 `json:"bearer"`
	Direction  uint32 `json:"direction"`
	Fresh      uint32 `json:"fresh,omitempty"`
	Length     int    `json:"length"`
	Plaintext  string `json:"plaintext,omitempty"`
	Ciphertext string `json:"ciphertext,omitempty"`
	Message    string `json:"message,omitempty"`
	MAC        string `json:"mac,omitempty"`

	Ki   string `json:"ki,omitempty"`
	Rand string `json:"rand,omitempty"`
	SRES string `json:"sres,omitempty"`
	Kc   string `json:"kc,omitempty"`

	Input  string `json:"input,omitempty"`
	Output string `json:"output,omitempty"`
}

// Set is a full vector file for one algorithm.
type Set struct {
	Algorithm string     `json:"algorithm"`
	Family    suite.Kind `json:"family"`
	TestMode  TestMode   `json:"test_mode"`
	Rounds    int        `json:"rounds,omitempty"`
	Encrypt   []Record   `json:"encrypt,omitempty"`
	Decrypt   []Record   `json:"decrypt,omitempty"`
	MAC       []Record   `json:"mac,omitempty"`
	Auth      []Record   `json:"auth,omitempty"`
	Permute   []Record   `json:"permute,omitempty"`
}

// Len is the number of records across all sections.
func (s Set) Len() int {
	return len(s.Encrypt) + len(s.Decrypt) + len(s.MAC) + len(s.Auth) + len(s.Permute)
}

func (s Set) usesFresh() bool {
	a, err := suite.Lookup(s.Algorithm)
	return err == nil && a.UsesFresh
}

func (s Set) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Algorithm = %s\nFamily = %s\nTest = %s\n", s.Algorithm, s.Family, s.TestMode)
	if s.Rounds > 0 {
		fmt.Fprintf(&b, "Rounds = %d\n", s.Rounds)
	}
	b.WriteString("\n")

	fresh := s.usesFresh()
	hexLine := func(k, v string) { fmt.Fprintf(&b, "%s = %s\n", k, strings.ToUpper(v)) }
	frame := func(r Record, withFresh bool) {
		hexLine("KEY", r.Key)
		fmt.Fprintf(&b, "COUNTER = %08X\n", r.Counter)
		if withFresh {
			fmt.Fprintf(&b, "FRESH = %08X\n", r.Fresh)
		}
		fmt.Fprintf(&b, "BEARER = %d\nDIRECTION = %d\nLENGTH = %d\n", r.Bearer, r.Direction, r.Length)
	}
	emit := func(tag string, rows []Record, body func(Record)) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(&b, "[%s]\n", tag)
		for _, r := range rows {
			fmt.Fprintf(&b, "COUNT = %d\n", r.Count)
			body(r)
			b.WriteString("\n")
		}
	}

	emit(SectionEncrypt, s.Encrypt, func(r Record) {
		frame(r, false)
		hexLine("PLAINTEXT", r.Plaintext)
		if r.Ciphertext != "" {
			hexLine("CIPHERTEXT", r.Ciphertext)
		}
	})
	emit(SectionDecrypt, s.Decrypt, func(r Record) {
		frame(r, false)
		hexLine("CIPHERTEXT", r.Ciphertext)
		if r.Plaintext != "" {
			hexLine("PLAINTEXT", r.Plaintext)
		}
	})
	emit(SectionMAC, s.MAC, func(r Record) {
		frame(r, fresh)
		hexLine("MESSAGE", r.Message)
		if r.MAC != "" {
			hexLine("MAC", r.MAC)
		}
	})
	emit(SectionAuth, s.Auth, func(r Record) {
		hexLine("KI", r.Ki)
		hexLine("RAND", r.Rand)
		if r.SRES != "" {
			hexLine("SRES", r.SRES)
		}
		if r.Kc != "" {
			hexLine("KC", r.Kc)
		}
	})
	emit(SectionPermute, s.Permute, func(r Record) {
		hexLine("INPUT", r.Input)
		if r.Output != "" {
			hexLine("OUTPUT", r.Output)
		}
	})
	return b.String()
}

// Fingerprint is the SHA3-256 of the text rendering.
func (s Set) Fingerprint() string {
	sum := sha3.Sum256([]byte(s.String()))
	return hex.EncodeToString(sum[:])
}
