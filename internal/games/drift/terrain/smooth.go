package terrain

// Smooth applies iterations passes of a 5-tap mean filter to the curve's Y
// values. Each interior point averages itself with up to two in-bounds
// neighbours on each side; the first and last points never move. X values and
// length are preserved, and curves of two points or fewer come back as a copy.
func Smooth(c Curve, iterations int) Curve {
	res := make(Curve, len(c))
	copy(res, c)
	if len(c) <= 2 {
		return res
	}

	tmp := make(Curve, len(c))
	n := len(c)
	for k := 0; k < iterations; k++ {
		tmp[0] = res[0]
		tmp[n-1] = res[n-1]
		for i := 1; i < n-1; i++ {
			sum, count := res[i].Y, 1.0
			for _, j := range [...]int{i - 2, i - 1, i + 1, i + 2} {
				if j >= 0 && j < n {
					sum += res[j].Y
					count++
				}
			}
			tmp[i] = Point{X: res[i].X, Y: sum / count}
		}
		res, tmp = tmp, res
	}
	return res
}
