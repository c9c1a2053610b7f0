// Package suite names the 3GPP algorithms and dispatches them to the
// primitive packages behind a single validated entry point.
package suite

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cryptomobile/internal/aes3gpp"
	"cryptomobile/internal/bits"
	"cryptomobile/internal/comp128"
	"cryptomobile/internal/kasumi"
	"cryptomobile/internal/keccak"
	"cryptomobile/internal/mode"
	"cryptomobile/internal/snow3g"
	"cryptomobile/internal/zuc"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Kind groups algorithms by what they compute.
type Kind string

const (
	KindCipher      Kind = "cipher"
	KindMAC         Kind = "mac"
	KindAuth        Kind = "auth"
	KindPermutation Kind = "permutation"
)

// Params is the frame context shared by every f8/f9 style call. Fresh is
// read only by UIA1 and UIA2; Bearer is ignored by them.
type Params struct {
	Key       []byte
	Count     uint32
	Bearer    uint32
	Direction uint32
	Fresh     uint32
}

type (
	CipherFunc func(p Params, msg bits.Message) ([]byte, error)
	MACFunc    func(p Params, msg bits.Message) ([4]byte, error)
)

// Algorithm describes one catalogue entry.
type Algorithm struct {
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	Primitive string `json:"primitive"`
	Reference string `json:"reference"`
	UsesFresh bool   `json:"uses_fresh,omitempty"`
}

type cipherEntry struct {
	Algorithm
	fn CipherFunc
}

type macEntry struct {
	Algorithm
	fn MACFunc
}

var ciphers = map[string]cipherEntry{
	"EEA0": {Algorithm{"EEA0", KindCipher, "NULL", "3GPP TS 33.401", false}, null},
	"UEA1": {Algorithm{"UEA1", KindCipher, "KASUMI", "3GPP TS 35.201", false}, func(p Params, m bits.Message) ([]byte, error) {
		return kasumi.F8(p.Key, p.Count, p.Bearer, p.Direction, m)
	}},
	"UEA2": {Algorithm{"UEA2", KindCipher, "SNOW3G", "ETSI/SAGE UEA2&UIA2 Document 1", false}, snow3gF8},
	"EEA1": {Algorithm{"EEA1", KindCipher, "SNOW3G", "3GPP TS 33.401 Annex B.1", false}, snow3gF8},
	"EEA2": {Algorithm{"EEA2", KindCipher, "AES", "3GPP TS 33.401 Annex B.1.3", false}, func(p Params, m bits.Message) ([]byte, error) {
		return aes3gpp.EEA2(p.Key, p.Count, p.Bearer, p.Direction, m)
	}},
	"EEA3": {Algorithm{"EEA3", KindCipher, "ZUC", "ETSI/SAGE EEA3&EIA3 Document 1", false}, func(p Params, m bits.Message) ([]byte, error) {
		return zuc.EEA3(p.Key, p.Count, p.Bearer, p.Direction, m)
	}},
}

var macs = map[string]macEntry{
	"EIA0": {Algorithm{"EIA0", KindMAC, "NULL", "3GPP TS 33.401", false}, nullMAC},
	"UIA1": {Algorithm{"UIA1", KindMAC, "KASUMI", "3GPP TS 35.201", true}, func(p Params, m bits.Message) ([4]byte, error) {
		return kasumi.F9(p.Key, p.Count, p.Fresh, p.Direction, m)
	}},
	"UIA2": {Algorithm{"UIA2", KindMAC, "SNOW3G", "ETSI/SAGE UEA2&UIA2 Document 1", true}, func(p Params, m bits.Message) ([4]byte, error) {
		return snow3g.F9(p.Key, p.Count, p.Fresh, p.Direction, m)
	}},
	"EIA1": {Algorithm{"EIA1", KindMAC, "SNOW3G", "3GPP TS 33.401 Annex B.2", false}, func(p Params, m bits.Message) ([4]byte, error) {
		if err := bits.CheckBearer(p.Bearer); err != nil {
			return [4]byte{}, err
		}
		return snow3g.F9(p.Key, p.Count, p.Bearer<<27, p.Direction, m)
	}},
	"EIA2": {Algorithm{"EIA2", KindMAC, "AES", "3GPP TS 33.401 Annex B.2.3", false}, func(p Params, m bits.Message) ([4]byte, error) {
		return aes3gpp.EIA2(p.Key, p.Count, p.Bearer, p.Direction, m)
	}},
	"EIA3": {Algorithm{"EIA3", KindMAC, "ZUC", "ETSI/SAGE EEA3&EIA3 Document 1", false}, func(p Params, m bits.Message) ([4]byte, error) {
		return zuc.EIA3(p.Key, p.Count, p.Bearer, p.Direction, m)
	}},
}

var others = []Algorithm{
	{"COMP128V1", KindAuth, "COMP128", "GSM A3/A8 (v1)", false},
	{"COMP128V2", KindAuth, "COMP128", "GSM A3/A8 (v2)", false},
	{"COMP128V3", KindAuth, "COMP128", "GSM A3/A8 (v3)", false},
	{"KECCAK-P1600", KindPermutation, "Keccak", "FIPS 202 / 3GPP TS 35.231", false},
}

func snow3gF8(p Params, m bits.Message) ([]byte, error) {
	return snow3g.F8(p.Key, p.Count, p.Bearer, p.Direction, m)
}

type zeroStream struct{}

func (zeroStream) BlockSize() int { return 8 }

func (zeroStream) NextBlock(dst []byte) {
	for i := range dst {
		dst[i] = 0
	}
}

func null(p Params, m bits.Message) ([]byte, error) {
	if err := bits.CheckBearer(p.Bearer); err != nil {
		return nil, err
	}
	if err := bits.CheckDirection(p.Direction); err != nil {
		return nil, err
	}
	return mode.Encrypt(zeroStream{}, m)
}

func nullMAC(p Params, m bits.Message) ([4]byte, error) {
	if err := bits.CheckDirection(p.Direction); err != nil {
		return [4]byte{}, err
	}
	return [4]byte{}, m.Validate()
}

func normalize(name string) string { return strings.ToUpper(strings.TrimSpace(name)) }

// LookupCipher finds a confidentiality algorithm by name, case-insensitively.
func LookupCipher(name string) (CipherFunc, error) {
	e, ok := ciphers[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("cipher %q: %w", name, ErrUnknownAlgorithm)
	}
	return e.fn, nil
}

// LookupMAC finds an integrity algorithm by name, case-insensitively.
func LookupMAC(name string) (MACFunc, error) {
	e, ok := macs[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("mac %q: %w", name, ErrUnknownAlgorithm)
	}
	return e.fn, nil
}

// Lookup returns the catalogue entry for any algorithm name.
func Lookup(name string) (Algorithm, error) {
	n := normalize(name)
	if e, ok := ciphers[n]; ok {
		return e.Algorithm, nil
	}
	if e, ok := macs[n]; ok {
		return e.Algorithm, nil
	}
	for _, a := range others {
		if a.Name == n {
			return a, nil
		}
	}
	return Algorithm{}, fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
}

func Ciphers() []string { return sortedKeys(ciphers) }

func MACs() []string { return sortedKeys(macs) }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Describe lists every algorithm the engine offers, ciphers first.
func Describe() []Algorithm {
	var out []Algorithm
	for _, n := range Ciphers() {
		out = append(out, ciphers[n].Algorithm)
	}
	for _, n := range MACs() {
		out = append(out, macs[n].Algorithm)
	}
	return append(out, others...)
}

// Engine applies the resource limit in front of every primitive.
type Engine struct {
	Limit bits.Limit
}

func (e Engine) Cipher(name string, p Params, msg bits.Message) ([]byte, error) {
	fn, err := LookupCipher(name)
	if err != nil {
		return nil, err
	}
	if err := e.Limit.Check(msg.Bits); err != nil {
		return nil, err
	}
	return fn(p, msg)
}

func (e Engine) MAC(name string, p Params, msg bits.Message) ([4]byte, error) {
	fn, err := LookupMAC(name)
	if err != nil {
		return [4]byte{}, err
	}
	if err := e.Limit.Check(msg.Bits); err != nil {
		return [4]byte{}, err
	}
	return fn(p, msg)
}

func (e Engine) Auth(ki, rand []byte, v comp128.Variant) (sres [4]byte, kc [8]byte, err error) {
	return comp128.Compute(ki, rand, v)
}

func (e Engine) Permute(state []byte) ([]byte, error) {
	return keccak.PermuteBytes(state)
}

// IsInputError reports whether err was caused by the caller's arguments
// rather than by the engine.
func IsInputError(err error) bool {
	for _, target := range []error{
		bits.ErrInvalidLength, bits.ErrInvalidDirection, bits.ErrInvalidBearer,
		bits.ErrShortBuffer, comp128.ErrInvalidVariant, ErrUnknownAlgorithm,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
