package circuits

import "fmt"

// BytesToBits decomposes b into bits. Byte order is preserved and the bits of
// every byte are emitted least significant first, so bit k of the result is
// bit k%8 of byte k/8.
func BytesToBits(b []byte) []int {
	bits := make([]int, 0, len(b)*8)
	for _, v := range b {
		for j := 0; j < 8; j++ {
			bits = append(bits, int(v>>j)&1)
		}
	}
	return bits
}

// BitsToBytes is the inverse of BytesToBits.
func BitsToBytes(bits []int) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("bit length %d is not a multiple of 8", len(bits))
	}
	b := make([]byte, len(bits)/8)
	for k, bit := range bits {
		switch bit {
		case 0:
		case 1:
			b[k/8] |= 1 << (k % 8)
		default:
			return nil, fmt.Errorf("invalid bit value %d at position %d", bit, k)
		}
	}
	return b, nil
}

// ZeroBits returns n zero bits.
func ZeroBits(n int) []int {
	return make([]int, n)
}
