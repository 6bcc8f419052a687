package superob

// rollAzimuth centers a per-elevation plane on the ray bundles computed by
// §4.7 by shifting it zmax positions along the azimuth axis, per spec.md
// §4.8: rolled[(a+zmax) mod naz] = orig[a].
func rollAzimuth(plane [][]float64, naz, zmax int) [][]float64 {
	rolled := make([][]float64, naz)
	for a := 0; a < naz; a++ {
		rolled[(a+zmax)%naz] = plane[a]
	}
	return rolled
}

func wrapIndex(a, naz int) int {
	a %= naz
	if a < 0 {
		a += naz
	}
	return a
}
