package mathutil

// FullCircle is the number of integer angle units in one turn.
const FullCircle = 1 << 16

// atanTable[i] = round(atan(i/64) / 2π * FullCircle), i.e. the first octant
// sampled at 65 evenly spaced tangent ratios.
var atanTable = [...]int{
	0, 163, 326, 489, 651, 813, 975, 1136,
	1297, 1457, 1617, 1775, 1933, 2090, 2246, 2401,
	2555, 2708, 2860, 3010, 3159, 3307, 3453, 3599,
	3742, 3884, 4025, 4164, 4302, 4438, 4572, 4705,
	4836, 4966, 5094, 5220, 5344, 5467, 5589, 5708,
	5826, 5943, 6058, 6171, 6282, 6392, 6500, 6607,
	6712, 6815, 6917, 7018, 7117, 7214, 7310, 7405,
	7498, 7589, 7679, 7768, 7856, 7942, 8026, 8110,
	8192,
}

const (
	ratioBits = 16
	fracBits  = 10
	fracMask  = 1<<fracBits - 1
)

// Atan2 returns the polar angle of (x, y) in [0, FullCircle), measured from
// the positive x axis towards positive y. The octant is reduced with integer
// comparisons and the remaining angle interpolated from atanTable, so the
// result is continuous across all axes. Atan2(0, 0) is 0.
func Atan2(y, x int) uint16 {
	ax, ay := abs(x), abs(y)
	if ax == 0 && ay == 0 {
		return 0
	}
	var a int
	if ay <= ax {
		a = atanRatio(ay, ax)
	} else {
		a = FullCircle/4 - atanRatio(ax, ay)
	}
	if x < 0 {
		a = FullCircle/2 - a
	}
	if y < 0 {
		a = FullCircle - a
	}
	return uint16(a)
}

// atanRatio returns atan(num/den) for 0 <= num <= den, den > 0.
func atanRatio(num, den int) int {
	r := (num << ratioBits) / den
	idx := r >> fracBits
	if idx >= len(atanTable)-1 {
		return atanTable[len(atanTable)-1]
	}
	lo := atanTable[idx]
	return lo + ((atanTable[idx+1]-lo)*(r&fracMask)+1<<(fracBits-1))>>fracBits
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
