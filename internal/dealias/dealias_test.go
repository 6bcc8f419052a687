package dealias_test

import (
	"math"
	"testing"

	"github.com/PSmerkol/AccordPreprocTools/internal/config"
	"github.com/PSmerkol/AccordPreprocTools/internal/dealias"
	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"github.com/PSmerkol/AccordPreprocTools/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsFor(zSector, zMax, maxWind float64, minGoodPoints int) *config.Settings {
	s := config.Defaults()
	s.ZSectorSize = zSector
	s.ZMax = zMax
	s.MaxWind = maxWind
	s.MinGoodPoints = minGoodPoints
	return &s
}

// vradWithHeightSpread behaves like constantVRAD but assigns a distinct
// height per range gate (z increases with r), so §4.3's "z < zceil" rule
// only excludes the single farthest gate rather than every gate at once —
// the height map never returns the same z for two different ranges, so
// tying every gate at the same height (as constantVRAD does) never happens
// against real data.
func vradWithHeightSpread(naz, nr int, vny, meas, elangle float64) polar.Moment {
	m := constantVRAD(naz, nr, vny, meas, elangle)
	for a := 0; a < naz; a++ {
		for r := 0; r < nr; r++ {
			m.Zs[0][a][r] = 50.0 + float64(r)*10.0
		}
	}
	return m
}

// S1 - degenerate constant VRAD, no aliasing.
func TestRun_S1_ConstantVRADNoAliasing(t *testing.T) {
	vrad := vradWithHeightSpread(4, 2, 10, 1.0, 0)
	v := &polar.Volume{SiteHeight: 0, Vrad: vrad}
	s := settingsFor(100, 10000, 40, 1)
	r := report.New()

	err := dealias.Run(v, s, r)
	require.NoError(t, err)
	assert.Empty(t, r.Warnings)

	// r=0 (z=50) is strictly below zceil (=60, the top gate's height) and
	// eligible; r=1 (z=60) ties the ceiling and is excluded by design.
	for a := 0; a < 4; a++ {
		assert.False(t, math.IsNaN(v.WModels[0][a][0]), "wModels should be finite")
		assert.InDelta(t, 1.0, v.Dvrads[0][a][0], 1e-9)
	}
}

// S2 - clean aliasing round trip.
func TestRun_S2_CleanAliasing(t *testing.T) {
	const naz = 8
	const vny = 10.0
	vrad := vradWithHeightSpread(naz, 2, vny, 0, 0) // meas overwritten below
	trueField := make([]float64, naz)
	for a := 0; a < naz; a++ {
		az := vrad.Azimuths[0][a]
		trueField[a] = 15 * math.Cos(az)
		folded := trueField[a] - 2*vny*math.Round(trueField[a]/(2*vny))
		vrad.Meas[0][a][0] = folded
		vrad.Meas[0][a][1] = folded
	}

	v := &polar.Volume{SiteHeight: 0, Vrad: vrad}
	s := settingsFor(10000, 10000, 40, 1)
	r := report.New()

	err := dealias.Run(v, s, r)
	require.NoError(t, err)

	for a := 0; a < naz; a++ {
		assert.InDelta(t, trueField[a], v.Dvrads[0][a][0], 1e-6, "azimuth index %d", a)
	}
}

// S3 - dealiasing skip on underdetermined sector.
func TestRun_S3_UnderdeterminedSectorSkipped(t *testing.T) {
	vrad := vradWithHeightSpread(4, 2, 10, 1.0, 0)
	v := &polar.Volume{SiteHeight: 0, Vrad: vrad}
	s := settingsFor(100, 10000, 40, 100)
	r := report.New()

	err := dealias.Run(v, s, r)
	require.NoError(t, err)
	assert.NotEmpty(t, r.Warnings)

	for a := 0; a < 4; a++ {
		for rr := 0; rr < 2; rr++ {
			assert.True(t, math.IsNaN(v.Dvrads[0][a][rr]))
		}
	}
}

func TestRun_NoVRADIsFatal(t *testing.T) {
	v := &polar.Volume{SiteHeight: 0}
	s := settingsFor(100, 10000, 40, 1)
	r := report.New()

	err := dealias.Run(v, s, r)
	require.ErrorIs(t, err, dealias.ErrNoVRAD)
	assert.NotEmpty(t, r.Errors)
}

// Universal invariant: |dvrads - meas| = 2*k*vny for some bounded integer k.
func TestRun_UnfoldingRespectsNyquistBound(t *testing.T) {
	vrad := vradWithHeightSpread(8, 2, 10, 3.0, 0.1)
	v := &polar.Volume{SiteHeight: 0, Vrad: vrad}
	s := settingsFor(10000, 10000, 40, 1)
	r := report.New()

	require.NoError(t, dealias.Run(v, s, r))

	N := int(math.Floor(s.MaxWind / 10.0))
	for a := 0; a < 8; a++ {
		for rr := 0; rr < 2; rr++ {
			d := v.Dvrads[0][a][rr]
			if math.IsNaN(d) {
				continue
			}
			diff := d - vrad.Meas[0][a][rr]
			k := diff / (2 * 10.0)
			assert.InDelta(t, math.Round(k), k, 1e-9)
			assert.LessOrEqual(t, math.Abs(math.Round(k)), float64(N))
		}
	}
}
