package superob

import (
	"math"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
)

// AggregateVRAD coarsens a VRAD source cube (dealiased if available, raw
// otherwise) onto the grid described by g and rb, applying the mean/std
// gate of spec.md §4.9.
//
// bugCompat reproduces the legacy variance-accumulator defect documented in
// spec.md §9 (accumulates the range index m into s/s2 instead of the
// measurement, on the same non-skipped cells the correct path uses); it
// exists only for byte-for-byte comparison against historical output and
// should stay false otherwise.
//
// Ground truth: HoofSuperober.cpp superob (VRAD branch).
func AggregateVRAD(vrad *polar.Moment, source [][][]float64, g Grid, rb RayBins, rayFactor int, vradPercentage, vradMaxStd float64, bugCompat bool) polar.Moment {
	nel := vrad.Nel()
	nazMax := g.NazMax()
	nrMax := g.NrMax()
	zmax := (rayFactor - 1) / 2

	dst := polar.Moment{
		NazMax:   nazMax,
		NrMax:    nrMax,
		Elangle:  g.ElanglePrime,
		Naz:      g.NazPrime,
		Nr:       g.NrPrime,
		Rstart:   g.RstartPrime,
		Rscale:   g.RscalePrime,
		Azimuths: g.AzimuthsPrime,
		Ranges:   g.RangesPrime,
		Meas:     polar.NewCube3D(nel, nazMax, nrMax),
		Qual:     polar.NewCube3D(nel, nazMax, nrMax),
	}

	for e := 0; e < nel; e++ {
		naz := vrad.Naz[e]
		measRolled := rollAzimuth(source[e], naz, zmax)

		borders := rb.RangeBorders[e]
		nrPrime := g.NrPrime[e]
		nazPrime := g.NazPrime[e]

		for k := 0; k < nazPrime; k++ {
			for j := 0; j < nrPrime; j++ {
				startBin, endBin := borders[j], borders[j+1]
				startRay, endRay := rb.StartRay[e][j][k], rb.EndRay[e][j][k]

				var nGood int
				var s, s2 float64
				for a := startRay; a < endRay; a++ {
					aw := wrapIndex(a, naz)
					for r := startBin; r < endBin; r++ {
						v := measRolled[aw][r]
						if math.IsNaN(v) {
							continue
						}
						nGood++
						if bugCompat {
							m := float64(r)
							s += m
							s2 += m * m
						} else {
							s += v
							s2 += v * v
						}
					}
				}

				n := (endRay - startRay) * (endBin - startBin)
				if nGood == 0 {
					continue
				}
				avg := s / float64(nGood)
				std := math.Sqrt(math.Max(0, (s2-s*avg)/float64(nGood)))

				if float64(nGood) > vradPercentage*float64(n) && std < vradMaxStd {
					dst.Meas[e][k][j] = avg
					dst.Qual[e][k][j] = 1.0
				}
			}
		}
	}

	return dst
}
