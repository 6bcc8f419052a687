package dealias

import (
	"math"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
)

// Sectors partitions eligible bins into height slabs, per spec.md §4.3.
// Ground truth: HoofDealiaser.cpp determineHeightSectors.
type Sectors struct {
	ZStarts []float64
	ZEnds   []float64
	ZIdxs   [][]polar.Index3
}

// BuildSectors computes height sectors from [zstart, zceil) in steps of
// zSectorSize, then assigns every eligible bin (z, meas, D all defined and
// z < zceil) to its sector.
func BuildSectors(vrad *polar.Moment, q Quantities, siteHeight, zSectorSize, zMax float64) Sectors {
	_, zdatamax := polar.NanMinMax3D(vrad.Zs)
	if math.IsNaN(zdatamax) {
		zdatamax = siteHeight
	}
	zstart := siteHeight
	zceil := math.Min(zdatamax, zMax)

	nl := int(math.Floor((zceil-zstart)/zSectorSize)) + 1
	if nl < 1 {
		nl = 1
	}

	s := Sectors{
		ZStarts: make([]float64, nl),
		ZEnds:   make([]float64, nl),
		ZIdxs:   make([][]polar.Index3, nl),
	}
	for n := 0; n < nl; n++ {
		s.ZStarts[n] = zstart + float64(n)*zSectorSize
		s.ZEnds[n] = s.ZStarts[n] + zSectorSize
	}

	for e := 0; e < vrad.Nel(); e++ {
		for a := 0; a < vrad.Naz[e]; a++ {
			for r := 0; r < vrad.Nr[e]; r++ {
				z := vrad.Zs[e][a][r]
				if math.IsNaN(z) || math.IsNaN(vrad.Meas[e][a][r]) || math.IsNaN(q.D[e][a][r]) {
					continue
				}
				if z >= zceil {
					continue
				}
				n := int(math.Floor((z - zstart) / zSectorSize))
				if n < 0 {
					n = 0
				}
				if n >= nl {
					n = nl - 1
				}
				s.ZIdxs[n] = append(s.ZIdxs[n], polar.Index3{E: e, A: a, R: r})
			}
		}
	}

	return s
}
