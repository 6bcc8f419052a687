package odim_test

import (
	"math"
	"testing"

	"github.com/PSmerkol/AccordPreprocTools/internal/odim"
	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneElevationDBZ() *polar.Moment {
	m := &polar.Moment{
		NazMax: 2,
		NrMax:  2,
		Naz:    []int{2},
		Nr:     []int{2},
		Rscale: []float64{500},
		Meas:   [][][]float64{{{10, 20}, {30, math.NaN()}}},
		Qual:   [][][]float64{{{1, 1}, {1, 0}}},
	}
	return m
}

func TestPersistMoment_WritesWhereAndWhatAttributes(t *testing.T) {
	mem := odim.NewMemFile()
	require.NoError(t, odim.PersistMoment(mem, oneElevationDBZ(), odim.TaskSuperobing, 0))

	nbins, ok := mem.ReadAttribute("/dataset1/where", "nbins")
	require.True(t, ok)
	assert.Equal(t, 2.0, nbins)

	nrays, ok := mem.ReadAttribute("/dataset1/where", "nrays")
	require.True(t, ok)
	assert.Equal(t, 2.0, nrays)

	gain, ok := mem.ReadAttribute("/dataset1/data1/what", "gain")
	require.True(t, ok)
	assert.Greater(t, gain, 0.0)

	task, ok := mem.Attrs["/dataset1/quality1/how"]["task"]
	require.True(t, ok)
	assert.Equal(t, "superobing", task)
}

func TestPersistMoment_QuantizesDataIntoMemDataset(t *testing.T) {
	mem := odim.NewMemFile()
	require.NoError(t, odim.PersistMoment(mem, oneElevationDBZ(), odim.TaskSuperobing, 0))

	data, ok := mem.Datasets["/dataset1/data1/data"]["data"]
	require.True(t, ok)
	require.Len(t, data, 2)

	nodata := odim.ReadNodata(mem, "/dataset1/data1/what")
	assert.Equal(t, data[1][1], nodata, "the NaN cell must round-trip to the dataset's nodata byte")
}

func TestPersistDealiased_UsesVRADGeometryWithoutQuality(t *testing.T) {
	vrad := &polar.Moment{
		Naz:    []int{1},
		Nr:     []int{1},
		Rscale: []float64{250},
		Vny:    []float64{25},
	}
	dvrads := [][][]float64{{{12.5}}}

	mem := odim.NewMemFile()
	require.NoError(t, odim.PersistDealiased(mem, vrad, dvrads))

	_, hasQuality := mem.Datasets["/dataset1/quality1/data"]
	assert.False(t, hasQuality, "dealiasing does not attach a quality field")

	rscale, ok := mem.ReadAttribute("/dataset1/where", "rscale")
	require.True(t, ok)
	assert.Equal(t, 250.0, rscale)
}

func TestReadNodata_DefaultsTo255WhenAbsent(t *testing.T) {
	mem := odim.NewMemFile()
	assert.Equal(t, byte(255), odim.ReadNodata(mem, "/dataset1/data1/what"))
}

func TestPersistMoment_WritesThsToData2WhenPresent(t *testing.T) {
	m := oneElevationDBZ()
	m.Ths = [][][]float64{{{5, 6}, {7, 8}}}

	mem := odim.NewMemFile()
	require.NoError(t, odim.PersistMoment(mem, m, odim.TaskSuperobing, 0))

	_, hasData2 := mem.Datasets["/dataset1/data2/data"]
	assert.True(t, hasData2, "DBZ's companion TH field must be persisted to data2")

	gain, ok := mem.ReadAttribute("/dataset1/data2/what", "gain")
	require.True(t, ok)
	assert.Greater(t, gain, 0.0)
}

func TestPersistMoment_OmitsData2WhenThsAbsent(t *testing.T) {
	mem := odim.NewMemFile()
	require.NoError(t, odim.PersistMoment(mem, oneElevationDBZ(), odim.TaskSuperobing, 0))

	_, hasData2 := mem.Datasets["/dataset1/data2/data"]
	assert.False(t, hasData2, "VRAD has no TH companion field")
}

func TestPersistMoment_GroupOffsetKeepsMomentsDisjoint(t *testing.T) {
	dbz := oneElevationDBZ()
	vrad := &polar.Moment{
		NazMax: 2,
		NrMax:  2,
		Naz:    []int{2},
		Nr:     []int{2},
		Rscale: []float64{750},
		Meas:   [][][]float64{{{1, 2}, {3, 4}}},
	}

	mem := odim.NewMemFile()
	require.NoError(t, odim.PersistMoment(mem, dbz, odim.TaskSuperobing, 0))
	require.NoError(t, odim.PersistMoment(mem, vrad, odim.TaskSuperobing, dbz.Nel()))

	dbzScale, ok := mem.ReadAttribute("/dataset1/where", "rscale")
	require.True(t, ok)
	assert.Equal(t, 500.0, dbzScale, "DBZ's /where must survive the later VRAD write")

	vradScale, ok := mem.ReadAttribute("/dataset2/where", "rscale")
	require.True(t, ok)
	assert.Equal(t, 750.0, vradScale)
}

func TestPersistMoment_UsesRealDatasetNamesWhenPresent(t *testing.T) {
	m := oneElevationDBZ()
	m.Datasets = []string{"dataset7"}

	mem := odim.NewMemFile()
	require.NoError(t, odim.PersistMoment(mem, m, odim.TaskSuperobing, 5))

	_, hasData := mem.Datasets["/dataset7/data1/data"]
	assert.True(t, hasData, "a real dataset identifier must override the synthesized group offset")
}
