package polar

import "math"

// Moment holds one radar moment (DBZ, TH, or VRAD) across a full volume
// scan. Cubes are rectangular ([nel][nazMax][nrMax]) and padded with NaN
// beyond each elevation's own [naz[e]][nr[e]] bounds.
type Moment struct {
	Datasets []string // per-elevation ODIM dataset group names (e.g. "dataset3"); when set, odim.PersistMoment writes that elevation under this group instead of a synthesized one

	NazMax int
	NrMax  int

	Elangle []float64 // radians, per elevation
	Naz     []int     // rays per elevation
	Nr      []int     // range gates per elevation
	Rstart  []float64 // meters, per elevation
	Rscale  []float64 // meters/gate, per elevation
	Vny     []float64 // Nyquist velocity m/s, VRAD only; nil for DBZ/TH

	Azimuths [][]float64 // [e][a], radians, uniformly spaced on [0, 2π)
	Ranges   [][]float64 // [e][r], meters, bin centers

	Meas [][][]float64 // [e][a][r], NaN sentinel for missing/invalid
	Ths  [][][]float64 // [e][a][r], linear reflectivity companion to DBZ; nil if not DBZ
	Qual [][][]float64 // [e][a][r], total quality in [0,1]; nil if not DBZ
	Zs   [][][]float64 // [e][a][r], height above ground; VRAD only
}

// Nel returns the number of elevations in the moment.
func (m *Moment) Nel() int {
	if m == nil {
		return 0
	}
	return len(m.Naz)
}

// Empty reports whether the moment carries no elevations.
func (m *Moment) Empty() bool {
	return m.Nel() == 0
}

// NewCube3D allocates a rectangular [nel][naz][nr] cube filled with NaN.
func NewCube3D(nel, naz, nr int) [][][]float64 {
	c := make([][][]float64, nel)
	for e := range c {
		c[e] = NewCube2D(naz, nr)
	}
	return c
}

// NewCube2D allocates a rectangular [naz][nr] plane filled with NaN.
func NewCube2D(naz, nr int) [][]float64 {
	p := make([][]float64, naz)
	for a := range p {
		row := make([]float64, nr)
		for r := range row {
			row[r] = math.NaN()
		}
		p[a] = row
	}
	return p
}

// IsAllNaN3D reports whether every value in a ragged cube is NaN. Rows
// shorter than the caller expects are handled naturally since the loop
// bounds come from the slice itself.
func IsAllNaN3D(c [][][]float64) bool {
	for _, plane := range c {
		for _, row := range plane {
			for _, v := range row {
				if !math.IsNaN(v) {
					return false
				}
			}
		}
	}
	return true
}

// NanMinMax3D returns the (min, max) of non-NaN values in a cube. If every
// value is NaN, both results are NaN.
func NanMinMax3D(c [][][]float64) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, plane := range c {
		for _, row := range plane {
			for _, v := range row {
				if math.IsNaN(v) {
					continue
				}
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
		}
	}
	if math.IsInf(min, 1) {
		min = math.NaN()
	}
	if math.IsInf(max, -1) {
		max = math.NaN()
	}
	return min, max
}

// NanMinMax2D returns the (min, max) of non-NaN values in a 2-D field. If
// every value is NaN, both results are NaN.
func NanMinMax2D(p [][]float64) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, row := range p {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if math.IsInf(min, 1) {
		min = math.NaN()
	}
	if math.IsInf(max, -1) {
		max = math.NaN()
	}
	return min, max
}

// Linspace fills dst with n values evenly spaced on [a, b).
func Linspace(dst []float64, a, b float64, n int) {
	if n < 1 || n > len(dst) {
		return
	}
	step := (b - a) / float64(n)
	for i := 0; i < n; i++ {
		dst[i] = a + float64(i)*step
	}
}
