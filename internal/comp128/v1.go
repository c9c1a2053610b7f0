package comp128

var v1Tables = [5][]byte{table0[:], table1[:], table2[:], table3[:], table4[:]}

// v1 is the original COMP128: eight rounds of a five-level butterfly over
// Ki|RAND, each followed by a bit permutation feeding the next RAND half.
func v1(ki, rand []byte) (sres [4]byte, kc [8]byte) {
	var x [32]byte
	var bit [128]byte

	copy(x[16:], rand)
	for round := 1; round <= 8; round++ {
		copy(x[:16], ki)

		for j := 0; j < 5; j++ {
			t := v1Tables[j]
			mod := 1 << uint(9-j)
			for k := 0; k < 1<<uint(j); k++ {
				for l := 0; l < 1<<uint(4-j); l++ {
					m := l + k*(1<<uint(5-j))
					n := m + 1<<uint(4-j)
					y := (int(x[m]) + 2*int(x[n])) % mod
					z := (2*int(x[m]) + int(x[n])) % mod
					x[m] = t[y]
					x[n] = t[z]
				}
			}
		}

		for j := 0; j < 32; j++ {
			for k := 0; k < 4; k++ {
				bit[4*j+k] = (x[j] >> uint(3-k)) & 1
			}
		}

		if round < 8 {
			for j := 0; j < 16; j++ {
				x[j+16] = 0
				for k := 0; k < 8; k++ {
					nb := ((8*j + k) * 17) % 128
					x[j+16] |= bit[nb] << uint(7-k)
				}
			}
		}
	}

	for i := 0; i < 4; i++ {
		sres[i] = x[2*i]<<4 | x[2*i+1]
	}
	// Only 54 bits of Kc carry key material; the last ten are zero.
	for i := 0; i < 6; i++ {
		kc[i] = x[2*i+18]<<6 | x[2*i+19]<<2 | x[2*i+20]>>2
	}
	kc[6] = x[30]<<6 | x[31]<<2
	kc[7] = 0
	return sres, kc
}
