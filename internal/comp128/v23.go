package comp128

// v23Round mixes rand with kxor through five table levels and then spreads
// the 256 mixed bits back into 16 bytes.
func v23Round(kxor, rand *[16]byte) [16]byte {
	var temp [16]byte
	var km [32]byte
	copy(km[:16], rand[:])
	copy(km[16:], kxor[:])

	for i := uint(0); i < 5; i++ {
		for z := 0; z < 16; z++ {
			temp[z] = v23Table0[v23Table1[km[16+z]]^km[z]]
		}
		for j := 0; j < 1<<i; j++ {
			for k := 0; k < 1<<(4-i); k++ {
				km[((2*k+1)<<i)+j] = v23Table0[v23Table1[temp[(k<<i)+j]]^km[(k<<i)+16+j]]
				km[(k<<(i+1))+j] = temp[(k<<i)+j]
			}
		}
	}

	var out [16]byte
	for i := 0; i < 16; i++ {
		for j := 0; j < 8; j++ {
			b := km[(19*(j+8*i)+19)%256/8] >> uint((3*j+3)%8) & 1
			out[i] ^= b << uint(j)
		}
	}
	return out
}

// v23 implements COMP128-2 and COMP128-3. They share tables and rounds; v2
// additionally clears the last ten bits of Kc.
func v23(ki, rand []byte, isV2 bool) (sres [4]byte, kc [8]byte) {
	var kmix, rmix, kxor [16]byte
	for i := 0; i < 16; i++ {
		kmix[i] = ki[15-i]
		rmix[i] = rand[15-i]
	}
	for i := range kxor {
		kxor[i] = kmix[i] ^ rmix[i]
	}

	for i := 0; i < 8; i++ {
		rmix = v23Round(&kxor, &rmix)
	}

	var out [16]byte
	for i := range out {
		out[i] = rmix[15-i]
	}
	if isV2 {
		out[15] = 0
		out[14] &^= 0x03
	}

	copy(sres[:], out[0:4])
	copy(kc[:], out[8:16])
	return sres, kc
}
