package dealias

import (
	"math"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
)

// Unfold searches, per bin, for the integer Nyquist multiplier k minimizing
// |meas + 2k*vny - wModels|, per spec.md §4.5. Ties are broken toward the
// smaller |k| by iterating k = 0, +1, -1, +2, -2, ... and only replacing the
// current best on a strict improvement.
//
// Ground truth: HoofDealiaser.cpp dealias.
func Unfold(vrad *polar.Moment, q Quantities, wModels [][][]float64, maxWind float64) (ns [][][]int, dvrads [][][]float64) {
	N := 0
	if q.VnyMin > 0 {
		N = int(math.Floor(maxWind / q.VnyMin))
	}

	ns = make([][][]int, vrad.Nel())
	dvrads = polar.NewCube3D(vrad.Nel(), vrad.NazMax, vrad.NrMax)

	ks := candidateKs(N)

	for e := 0; e < vrad.Nel(); e++ {
		naz := vrad.Naz[e]
		nr := vrad.Nr[e]
		vny := vrad.Vny[e]

		planeNs := make([][]int, naz)
		for a := 0; a < naz; a++ {
			row := make([]int, nr)
			for r := 0; r < nr; r++ {
				row[r] = math.MinInt32 // sentinel: no k chosen
			}
			planeNs[a] = row
		}

		for a := 0; a < naz; a++ {
			for r := 0; r < nr; r++ {
				meas := vrad.Meas[e][a][r]
				wm := wModels[e][a][r]
				if math.IsNaN(meas) || math.IsNaN(wm) || math.IsNaN(q.D[e][a][r]) {
					continue
				}

				bestK := 0
				bestDist := math.Inf(1)
				for _, k := range ks {
					cand := meas + 2*float64(k)*vny
					dist := math.Abs(cand - wm)
					if dist < bestDist {
						bestDist = dist
						bestK = k
					}
				}

				planeNs[a][r] = bestK
				dvrads[e][a][r] = meas + 2*float64(bestK)*vny
			}
		}
		ns[e] = planeNs
	}

	return ns, dvrads
}

// candidateKs returns [0, N] u [-N, -1] ordered smallest-|k| first, so that
// scanning left-to-right and keeping only strict improvements naturally
// prefers the smaller |k| on ties.
func candidateKs(N int) []int {
	ks := make([]int, 0, 2*N+1)
	ks = append(ks, 0)
	for k := 1; k <= N; k++ {
		ks = append(ks, k, -k)
	}
	return ks
}
