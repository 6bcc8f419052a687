package superob_test

import (
	"math"
	"testing"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"github.com/PSmerkol/AccordPreprocTools/internal/superob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S5 - superob wet/dry: one coarse cell covering 12 source bins, 8 wet
// (DBZ=30) quality 1.0, 4 dry (DBZ=-30) quality 1.0.
func TestAggregateDBZ_S5_WetDryRule(t *testing.T) {
	const naz, nr = 1, 12
	src := &polar.Moment{
		Naz:     []int{naz},
		Nr:      []int{nr},
		Rscale:  []float64{500},
		Rstart:  []float64{0},
		Elangle: []float64{0},
		Meas:    polar.NewCube3D(1, naz, nr),
		Qual:    polar.NewCube3D(1, naz, nr),
	}
	for r := 0; r < nr; r++ {
		if r < 8 {
			src.Meas[0][0][r] = 30
		} else {
			src.Meas[0][0][r] = -30
		}
		src.Qual[0][0][r] = 1.0
	}

	g := superob.PrepareGrid(src, nr, naz) // binFactor=nr, rayFactor=naz -> single coarse cell
	rb := superob.ComputeRayBins(src.Naz, src.Nr, src.Rscale, g, nr, naz, 1e9)

	dst := superob.AggregateDBZ(src, g, rb, naz, 0.5, 0, 0.5)

	require.Equal(t, 1, dst.Naz[0])
	require.Equal(t, 1, dst.Nr[0])
	assert.InDelta(t, 30.0, dst.Meas[0][0][0], 1e-9)
	assert.Equal(t, 1.0, dst.Qual[0][0][0])
}

func TestAggregateDBZ_DryFallback(t *testing.T) {
	const naz, nr = 1, 12
	src := &polar.Moment{
		Naz:     []int{naz},
		Nr:      []int{nr},
		Rscale:  []float64{500},
		Rstart:  []float64{0},
		Elangle: []float64{0},
		Meas:    polar.NewCube3D(1, naz, nr),
		Qual:    polar.NewCube3D(1, naz, nr),
	}
	for r := 0; r < nr; r++ {
		if r < 2 {
			src.Meas[0][0][r] = 30 // below the 0.5*N wet threshold
		} else {
			src.Meas[0][0][r] = -40
		}
		src.Qual[0][0][r] = 1.0
	}

	g := superob.PrepareGrid(src, nr, naz)
	rb := superob.ComputeRayBins(src.Naz, src.Nr, src.Rscale, g, nr, naz, 1e9)
	dst := superob.AggregateDBZ(src, g, rb, naz, 0.5, 0, 0.5)

	wantMin, _ := polar.NanMinMax3D(src.Meas)
	assert.InDelta(t, wantMin, dst.Meas[0][0][0], 1e-9)
	assert.Equal(t, 1.0, dst.Qual[0][0][0])
}

func TestAggregateDBZ_LowQualityLeavesNaN(t *testing.T) {
	const naz, nr = 1, 4
	src := &polar.Moment{
		Naz:     []int{naz},
		Nr:      []int{nr},
		Rscale:  []float64{500},
		Rstart:  []float64{0},
		Elangle: []float64{0},
		Meas:    polar.NewCube3D(1, naz, nr),
		Qual:    polar.NewCube3D(1, naz, nr),
	}
	for r := 0; r < nr; r++ {
		src.Meas[0][0][r] = 30
		src.Qual[0][0][r] = 0.1 // below minQuality
	}

	g := superob.PrepareGrid(src, nr, naz)
	rb := superob.ComputeRayBins(src.Naz, src.Nr, src.Rscale, g, nr, naz, 1e9)
	dst := superob.AggregateDBZ(src, g, rb, naz, 0.5, 0, 0.5)

	assert.True(t, math.IsNaN(dst.Meas[0][0][0]))
}
