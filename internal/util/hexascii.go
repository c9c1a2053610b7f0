package util

import (
	"encoding/hex"
	"strings"
)

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "").Replace(s)
}

func IsLikelyHex(s string) bool {
	s = clean(s)
	if len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// DecodeHex decodes s after dropping whitespace and a leading 0x.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(clean(s))
}

// ToHex returns s normalised when it already looks like hex, and the hex
// encoding of its bytes otherwise.
func ToHex(s string) (string, error) {
	if IsLikelyHex(s) {
		return strings.ToLower(clean(s)), nil
	}
	return hex.EncodeToString([]byte(strings.TrimSpace(s))), nil
}
