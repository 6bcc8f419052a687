// Package superob implements the coarse-grid superobing stage
// (spec.md §4.6-§4.9): geometric grid preparation, arc-length-adaptive ray
// bin borders, and clear-sky-aware DBZ/VRAD aggregation onto the coarse
// grid.
//
// Ground truth for the algorithm: HoofSuperober.cpp.
package superob

import (
	"math"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
)

// Grid holds the coarse per-elevation geometry derived from a source
// moment, per spec.md §4.6.
type Grid struct {
	NazPrime, NrPrime         []int
	RscalePrime, RstartPrime  []float64
	ElanglePrime              []float64
	AzimuthsPrime, RangesPrime [][]float64
}

// PrepareGrid computes the coarse grid geometry for a source moment given
// the range-bin and ray-angle folding factors. Ground truth:
// HoofSuperober.cpp prepareMetadata.
func PrepareGrid(src *polar.Moment, binFactor, rayFactor int) Grid {
	nel := src.Nel()
	g := Grid{
		NazPrime:      make([]int, nel),
		NrPrime:       make([]int, nel),
		RscalePrime:   make([]float64, nel),
		RstartPrime:   make([]float64, nel),
		ElanglePrime:  make([]float64, nel),
		AzimuthsPrime: make([][]float64, nel),
		RangesPrime:   make([][]float64, nel),
	}

	for e := 0; e < nel; e++ {
		nrPrime := src.Nr[e] / binFactor
		nazPrime := src.Naz[e] / rayFactor

		g.NrPrime[e] = nrPrime
		g.NazPrime[e] = nazPrime
		g.RscalePrime[e] = float64(binFactor) * src.Rscale[e]
		g.RstartPrime[e] = src.Rstart[e]
		if e < len(src.Elangle) {
			g.ElanglePrime[e] = src.Elangle[e]
		}

		az := make([]float64, nazPrime)
		polar.Linspace(az, 0, 2*math.Pi, nazPrime)
		g.AzimuthsPrime[e] = az

		ranges := make([]float64, nrPrime)
		polar.Linspace(ranges, src.Rstart[e], src.Rstart[e]+g.RscalePrime[e]*float64(nrPrime), nrPrime)
		g.RangesPrime[e] = ranges
	}

	return g
}

// NazMax returns the widest coarse azimuth dimension across elevations.
func (g Grid) NazMax() int {
	max := 0
	for _, n := range g.NazPrime {
		if n > max {
			max = n
		}
	}
	return max
}

// NrMax returns the widest coarse range dimension across elevations.
func (g Grid) NrMax() int {
	max := 0
	for _, n := range g.NrPrime {
		if n > max {
			max = n
		}
	}
	return max
}
