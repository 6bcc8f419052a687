package superob

import "math"

// RayBins holds, per elevation, the range-bin borders and the per-coarse-cell
// start/end ray borders computed by the arc-length-adaptive algorithm of
// spec.md §4.7. Ground truth: HoofSuperober.cpp _calculateBinBorders.
type RayBins struct {
	RangeBorders [][]int     // [e], length nr'[e]+1
	StartRay     [][][]int   // [e][j][k]
	EndRay       [][][]int   // [e][j][k]
}

// ComputeRayBins builds RayBins for every elevation of the source geometry.
func ComputeRayBins(naz, nr []int, rscale []float64, g Grid, binFactor, rayFactor int, maxArcSize float64) RayBins {
	nel := len(naz)
	zmax := (rayFactor - 1) / 2

	rb := RayBins{
		RangeBorders: make([][]int, nel),
		StartRay:     make([][][]int, nel),
		EndRay:       make([][][]int, nel),
	}

	for e := 0; e < nel; e++ {
		nrPrime := g.NrPrime[e]
		nazPrime := g.NazPrime[e]

		borders := make([]int, nrPrime+1)
		for j := 0; j < nrPrime; j++ {
			borders[j] = j * binFactor
		}
		borders[nrPrime] = nr[e]
		rb.RangeBorders[e] = borders

		L := (360.0 * 360.0 * maxArcSize) / (2 * math.Pi * float64(naz[e]) * float64(binFactor) * rscale[e])
		facSubs := computeFacSubs(nrPrime, len(borders), zmax, L)

		startRay := make([][]int, nrPrime)
		endRay := make([][]int, nrPrime)
		for j := 0; j < nrPrime; j++ {
			startRay[j] = make([]int, nazPrime)
			endRay[j] = make([]int, nazPrime)
			fs := facSubs[j]
			for k := 0; k < nazPrime; k++ {
				origStart := k * rayFactor
				origEnd := (k + 1) * rayFactor
				startRay[j][k] = origStart + fs
				endRay[j][k] = origEnd - fs
			}
		}
		rb.StartRay[e] = startRay
		rb.EndRay[e] = endRay
	}

	return rb
}

// computeFacSubs walks the ascending limIdx(z) sequence of spec.md §4.7 and
// returns, per coarse range index j, the shrink amount facSub(j) in
// [0, zmax]. The final tier is always clamped to len(rangeBorders), per the
// spec's normalization of the source's off-by-one ambiguity (§9).
func computeFacSubs(nrPrime, rangeBordersLen, zmax int, L float64) []int {
	limIdx := make([]int, zmax+1)
	for z := 0; z <= zmax; z++ {
		fac := 2*(zmax-z) + 1
		li := int(math.Floor(L/float64(fac)-1)) + 1
		if li < 0 {
			li = 0
		}
		if li > rangeBordersLen {
			li = rangeBordersLen
		}
		limIdx[z] = li
	}
	limIdx[zmax] = rangeBordersLen

	facSubs := make([]int, nrPrime)
	z := 0
	for j := 0; j < nrPrime; j++ {
		for z < zmax && j >= limIdx[z] {
			z++
		}
		facSubs[j] = z
	}
	return facSubs
}
