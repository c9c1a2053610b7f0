package aes3gpp

import (
	"crypto/cipher"
)

const rb = 0x87

func dbl(dst, src []byte) {
	var carry byte
	for i := len(src) - 1; i >= 0; i-- {
		b := src[i]
		dst[i] = b<<1 | carry
		carry = b >> 7
	}
	if carry != 0 {
		dst[len(dst)-1] ^= rb
	}
}

// bitCMAC computes CMAC (RFC 4493) over the first nbits bits of msg. The
// byte-oriented CMAC in github.com/aead/cmac cannot express a final partial
// byte, which EIA2 allows.
func bitCMAC(block cipher.Block, msg []byte, nbits int) [16]byte {
	const bs = 16
	var l, k1, k2 [bs]byte
	block.Encrypt(l[:], l[:])
	dbl(k1[:], l[:])
	dbl(k2[:], k1[:])

	n := (nbits + 8*bs - 1) / (8 * bs)
	complete := n > 0 && nbits%(8*bs) == 0
	if n == 0 {
		n = 1
	}

	var x [bs]byte
	for i := 0; i < n-1; i++ {
		for j := 0; j < bs; j++ {
			x[j] ^= msg[i*bs+j]
		}
		block.Encrypt(x[:], x[:])
	}

	var last [bs]byte
	rem := nbits - (n-1)*8*bs
	copy(last[:], msg[(n-1)*bs:(nbits+7)/8])
	if complete {
		for j := range last {
			last[j] ^= k1[j]
		}
	} else {
		full, part := rem/8, rem%8
		if part != 0 {
			last[full] &= byte(0xff) << uint(8-part)
		}
		last[full] |= 0x80 >> uint(part)
		for j := full + 1; j < bs; j++ {
			last[j] = 0
		}
		for j := range last {
			last[j] ^= k2[j]
		}
	}
	for j := range x {
		x[j] ^= last[j]
	}
	block.Encrypt(x[:], x[:])
	return x
}
