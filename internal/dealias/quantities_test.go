package dealias_test

import (
	"math"
	"testing"

	"github.com/PSmerkol/AccordPreprocTools/internal/dealias"
	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantVRAD(naz, nr int, vny, meas, elangle float64) polar.Moment {
	m := polar.Moment{
		NazMax:  naz,
		NrMax:   nr,
		Elangle: []float64{elangle},
		Naz:     []int{naz},
		Nr:      []int{nr},
		Rstart:  []float64{0},
		Rscale:  []float64{500},
		Vny:     []float64{vny},
	}
	m.Azimuths = make([][]float64, 1)
	m.Azimuths[0] = make([]float64, naz)
	polar.Linspace(m.Azimuths[0], 0, 2*math.Pi, naz)

	m.Ranges = make([][]float64, 1)
	m.Ranges[0] = make([]float64, nr)
	for r := 0; r < nr; r++ {
		m.Ranges[0][r] = float64(r+1) * 500
	}

	m.Meas = polar.NewCube3D(1, naz, nr)
	m.Zs = polar.NewCube3D(1, naz, nr)
	for a := 0; a < naz; a++ {
		for r := 0; r < nr; r++ {
			m.Meas[0][a][r] = meas
			m.Zs[0][a][r] = 50.0 // arbitrary finite height; every gate ties zceil, so none is sector-eligible
		}
	}
	return m
}

func TestComputeQuantities_NoVRAD(t *testing.T) {
	var vrad polar.Moment
	_, err := dealias.ComputeQuantities(&vrad)
	assert.ErrorIs(t, err, dealias.ErrNoVRAD)
}

func TestComputeQuantities_AllNaN(t *testing.T) {
	vrad := constantVRAD(4, 2, 10, math.NaN(), 0)
	_, err := dealias.ComputeQuantities(&vrad)
	assert.ErrorIs(t, err, dealias.ErrAllNaN)
}

func TestComputeQuantities_AzimuthWrapFinite(t *testing.T) {
	vrad := constantVRAD(8, 1, 10, 3.0, 0.1)
	q, err := dealias.ComputeQuantities(&vrad)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(q.D[0][0][0]), "D at a=0 should be finite")
	assert.False(t, math.IsNaN(q.D[0][7][0]), "D at a=naz-1 should be finite")
}

func TestComputeQuantities_NaNPropagation(t *testing.T) {
	vrad := constantVRAD(4, 2, 10, 1.0, 0)
	vrad.Meas[0][2][1] = math.NaN()

	q, err := dealias.ComputeQuantities(&vrad)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(q.A[0][2][1]))
	assert.True(t, math.IsNaN(q.B[0][2][1]))
	assert.True(t, math.IsNaN(q.D[0][2][1]))
}
