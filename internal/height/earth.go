// Package height implements the equivalent-Earth height map used to convert
// a VRAD bin's (elevation angle, slant range) into height above ground.
package height

import "math"

// Model holds the equivalent-Earth propagation constants. The zero value is
// not usable; construct with Default().
type Model struct {
	EarthRadius float64 // meters
	KFactor     float64 // equivalent-Earth radius factor, dimensionless
}

// Default returns the standard equivalent-Earth model: R = 6,371,200 m,
// K = 4/3.
func Default() Model {
	return Model{EarthRadius: 6371200.0, KFactor: 4.0 / 3.0}
}

// At computes height above ground for a single bin at elevation angle theta
// (radians) and slant range r (meters), given the radar's site height
// siteHeight (meters above sea level).
//
//	z(θ, r) = sqrt(r² + (KR)² + 2·r·KR·sin θ) − (KR − h₀)
//
// z ≥ siteHeight whenever theta ≥ 0.
func (m Model) At(theta, r, siteHeight float64) float64 {
	kr := m.KFactor * m.EarthRadius
	return math.Sqrt(r*r+kr*kr+2*r*kr*math.Sin(theta)) - (kr - siteHeight)
}

// Cube computes height above ground for every (elevation, azimuth, range)
// bin of a VRAD moment, given per-elevation angles and per-elevation range
// arrays. The result is a rectangular [nel][nazMax][nrMax] cube; bins
// outside an elevation's own [naz][nr] bounds are left at zero, not NaN as
// in the measurement cubes (callers should not read them).
func (m Model) Cube(nel, nazMax, nrMax int, elangle []float64, naz, nr []int, ranges [][]float64, siteHeight float64) [][][]float64 {
	kr := m.KFactor * m.EarthRadius
	krSq := kr * kr
	krh := kr - siteHeight

	zs := make([][][]float64, nel)
	for e := 0; e < nel; e++ {
		plane := make([][]float64, nazMax)
		twoKRsinA := 2 * kr * math.Sin(elangle[e])
		for a := 0; a < nazMax; a++ {
			row := make([]float64, nrMax)
			if a < naz[e] {
				for r := 0; r < nr[e]; r++ {
					rr := ranges[e][r]
					row[r] = math.Sqrt(rr*rr+krSq+rr*twoKRsinA) - krh
				}
			}
			plane[a] = row
		}
		zs[e] = plane
	}
	return zs
}
