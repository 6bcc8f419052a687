package dealias

import (
	"math"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"gonum.org/v1/gonum/mat"
)

// WindModel is the fitted horizontal wind (u, v) for one height sector.
type WindModel struct {
	U, V float64
	Fit  bool // false if the sector was skipped as underdetermined
}

// FitWindModels solves the 2-parameter least-squares wind fit for every
// sector with at least minGoodPoints eligible bins (spec.md §4.4), then
// evaluates the modelled radial velocity for every bin in that sector,
// rejecting over-speed results (|vm| >= maxWind).
//
// Ground truth: HoofDealiaser.cpp calculateWindModels, using
// gsl_multifit_linear there and gonum/mat's least-squares Solve here.
func FitWindModels(vrad *polar.Moment, q Quantities, s Sectors, minGoodPoints int, maxWind float64) (models []WindModel, wModels [][][]float64) {
	wModels = polar.NewCube3D(vrad.Nel(), vrad.NazMax, vrad.NrMax)
	models = make([]WindModel, len(s.ZIdxs))

	for n, idxs := range s.ZIdxs {
		if len(idxs) < minGoodPoints {
			continue
		}

		x := mat.NewDense(len(idxs), 2, nil)
		y := mat.NewDense(len(idxs), 1, nil)
		for i, idx := range idxs {
			x.Set(i, 0, -q.A[idx.E][idx.A][idx.R])
			x.Set(i, 1, q.B[idx.E][idx.A][idx.R])
			y.Set(i, 0, q.D[idx.E][idx.A][idx.R])
		}

		var beta mat.Dense
		if err := beta.Solve(x, y); err != nil {
			continue
		}
		u, v := beta.At(0, 0), beta.At(1, 0)
		models[n] = WindModel{U: u, V: v, Fit: true}

		for _, idx := range idxs {
			e, a, r := idx.E, idx.A, idx.R
			cosEl := math.Cos(vrad.Elangle[e])
			sinAz := math.Sin(vrad.Azimuths[e][a])
			cosAz := math.Cos(vrad.Azimuths[e][a])
			vm := cosEl * (u*sinAz + v*cosAz)
			if math.Abs(vm) < maxWind {
				wModels[e][a][r] = vm
			}
		}
	}

	return models, wModels
}
