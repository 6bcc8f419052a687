// Package dealias implements the Doppler velocity dealiasing stage
// (spec.md §4.2-§4.5): per-bin trigonometric model quantities, height-sector
// partitioning, a per-sector 2-parameter wind fit, and Nyquist-multiplier
// unfolding search.
//
// Ground truth for the algorithm: HoofDealiaser.cpp.
package dealias

import (
	"github.com/PSmerkol/AccordPreprocTools/internal/config"
	"github.com/PSmerkol/AccordPreprocTools/internal/height"
	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"github.com/PSmerkol/AccordPreprocTools/internal/report"
)

const stage = "dealias"

// Run executes the full dealiasing pipeline against v.Vrad and attaches its
// results (Dvrads, ZStarts, ZEnds, ZIdxs, WModels, Unfolded) to v. Returns
// ErrNoVRAD or ErrAllNaN as a fatal error per spec.md §7; all other
// conditions are recorded on r as warnings.
func Run(v *polar.Volume, s *config.Settings, r *report.Reporter) error {
	q, err := ComputeQuantities(&v.Vrad)
	if err != nil {
		r.Errorf(stage, "%v", err)
		return err
	}

	if v.Vrad.Zs == nil {
		v.Vrad.Zs = height.Default().Cube(v.Vrad.Nel(), v.Vrad.NazMax, v.Vrad.NrMax, v.Vrad.Elangle, v.Vrad.Naz, v.Vrad.Nr, v.Vrad.Ranges, v.SiteHeight)
	}

	sectors := BuildSectors(&v.Vrad, q, v.SiteHeight, s.ZSectorSize, s.ZMax)

	skipped := 0
	for _, idxs := range sectors.ZIdxs {
		if len(idxs) < s.MinGoodPoints {
			skipped++
		}
	}
	if skipped > 0 {
		r.Warningf(stage, "%d of %d height sectors skipped (fewer than %d eligible bins)", skipped, len(sectors.ZIdxs), s.MinGoodPoints)
	}

	_, wModels := FitWindModels(&v.Vrad, q, sectors, s.MinGoodPoints, s.MaxWind)
	ns, dvrads := Unfold(&v.Vrad, q, wModels, s.MaxWind)

	v.ZStarts = sectors.ZStarts
	v.ZEnds = sectors.ZEnds
	v.ZIdxs = sectors.ZIdxs
	v.WModels = wModels
	v.Unfolded = ns
	v.Dvrads = dvrads

	return nil
}
