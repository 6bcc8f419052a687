package dealias

import (
	"math"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
)

// Quantities holds the per-bin trigonometric fit inputs described in
// spec.md §4.2, computed once per volume and reused by the height-sector,
// fit, and unfolding steps. Ground truth: HoofDealiaser.cpp
// calculateWindModelQtys.
type Quantities struct {
	A, B, D [][][]float64 // [e][a][r]
	VnyMin  float64
}

// ComputeQuantities builds A, B, D and the global minimum Nyquist velocity
// from a VRAD moment. Returns ErrNoVRAD if the moment carries no
// elevations, ErrAllNaN if every measurement is NaN.
func ComputeQuantities(vrad *polar.Moment) (Quantities, error) {
	if vrad == nil || vrad.Empty() {
		return Quantities{}, ErrNoVRAD
	}
	if polar.IsAllNaN3D(vrad.Meas) {
		return Quantities{}, ErrAllNaN
	}

	nel := vrad.Nel()
	q := Quantities{
		A: make([][][]float64, nel),
		B: make([][][]float64, nel),
		D: make([][][]float64, nel),
	}

	vnyMin := math.Inf(1)
	for e := 0; e < nel; e++ {
		if vrad.Vny[e] < vnyMin {
			vnyMin = vrad.Vny[e]
		}
	}
	q.VnyMin = vnyMin

	// f3 is needed at every azimuth (including the two wrap neighbors) to
	// compute D, so compute it fully per elevation before differencing.
	for e := 0; e < nel; e++ {
		naz := vrad.Naz[e]
		nr := vrad.Nr[e]
		V := vrad.Vny[e]
		cosEl := math.Cos(vrad.Elangle[e])

		f1 := polar.NewCube2D(naz, nr)
		f3 := polar.NewCube2D(naz, nr)
		for a := 0; a < naz; a++ {
			for r := 0; r < nr; r++ {
				v := vrad.Meas[e][a][r]
				if math.IsNaN(v) {
					continue
				}
				arg := math.Pi * v / V
				f1[a][r] = math.Sin(arg)
				f3[a][r] = (V / math.Pi) * math.Cos(arg)
			}
		}

		planeA := polar.NewCube2D(naz, nr)
		planeB := polar.NewCube2D(naz, nr)
		planeD := polar.NewCube2D(naz, nr)
		for a := 0; a < naz; a++ {
			aNext := (a + 1) % naz
			aPrev := (a - 1 + naz) % naz
			cosAz := math.Cos(vrad.Azimuths[e][a])
			sinAz := math.Sin(vrad.Azimuths[e][a])

			deltaAz := vrad.Azimuths[e][aNext] - vrad.Azimuths[e][aPrev]
			if a == 0 || a == naz-1 {
				deltaAz -= 2 * math.Pi
			}

			for r := 0; r < nr; r++ {
				v := vrad.Meas[e][a][r]
				if math.IsNaN(v) {
					continue
				}
				planeA[a][r] = cosEl * cosAz * f1[a][r]
				planeB[a][r] = cosEl * sinAz * f1[a][r]

				f3Next := f3[aNext][r]
				f3Prev := f3[aPrev][r]
				if math.IsNaN(f3Next) || math.IsNaN(f3Prev) {
					continue
				}
				planeD[a][r] = (f3Next - f3Prev) / deltaAz
			}
		}
		q.A[e] = planeA
		q.B[e] = planeB
		q.D[e] = planeD
	}

	return q, nil
}
