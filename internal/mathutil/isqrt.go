package mathutil

// Isqrt returns floor(sqrt(n)) using the bit-by-bit method; no division and
// no floating point.
func Isqrt(n uint32) uint32 {
	var root uint32
	bit := uint32(1) << 30
	for bit > n {
		bit >>= 2
	}
	for bit != 0 {
		if n >= root+bit {
			n -= root + bit
			root = root>>1 + bit
		} else {
			root >>= 1
		}
		bit >>= 2
	}
	return root
}
