package superob

import (
	"github.com/PSmerkol/AccordPreprocTools/internal/config"
	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"github.com/PSmerkol/AccordPreprocTools/internal/report"
)

const stage = "superob"

// Run executes the superobing stage against v, populating v.Sdbz and
// v.Svrad. Returns ErrNoData if both DBZ and VRAD are empty (spec.md §7);
// an all-NaN moment on either channel is a warning, not a fatal error, and
// still yields a fully-NaN coarse output for that channel.
func Run(v *polar.Volume, s *config.Settings, r *report.Reporter) error {
	if v.Dbz.Empty() && v.Vrad.Empty() {
		r.Errorf(stage, "%v", ErrNoData)
		return ErrNoData
	}

	if !v.Dbz.Empty() {
		if polar.IsAllNaN3D(v.Dbz.Meas) {
			r.Warningf(stage, "DBZ moment is entirely NaN; emitting NaN coarse output")
		}
		g := PrepareGrid(&v.Dbz, s.RangeBinFactor, s.RayAngleFactor)
		rb := ComputeRayBins(v.Dbz.Naz, v.Dbz.Nr, v.Dbz.Rscale, g, s.RangeBinFactor, s.RayAngleFactor, s.MaxArcSize)
		v.Sdbz = AggregateDBZ(&v.Dbz, g, rb, s.RayAngleFactor, s.MinQuality, s.DbzClearsky, s.DbzPercentage)
	}

	if !v.Vrad.Empty() {
		if polar.IsAllNaN3D(v.Vrad.Meas) {
			r.Warningf(stage, "VRAD moment is entirely NaN; emitting NaN coarse output")
		}
		source := v.Vrad.Meas
		if v.DealiasingRan() {
			source = v.Dvrads
		}
		g := PrepareGrid(&v.Vrad, s.RangeBinFactor, s.RayAngleFactor)
		rb := ComputeRayBins(v.Vrad.Naz, v.Vrad.Nr, v.Vrad.Rscale, g, s.RangeBinFactor, s.RayAngleFactor, s.MaxArcSize)
		v.Svrad = AggregateVRAD(&v.Vrad, source, g, rb, s.RayAngleFactor, s.VradPercentage, s.VradMaxStd, s.BugCompatMode)
	}

	return nil
}
