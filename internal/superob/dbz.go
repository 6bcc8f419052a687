package superob

import (
	"math"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
)

// AggregateDBZ coarsens a DBZ moment onto the grid described by g and rb,
// applying the wet/dry/clear-sky rule of spec.md §4.8.
//
// Ground truth: HoofSuperober.cpp superob (DBZ branch).
func AggregateDBZ(src *polar.Moment, g Grid, rb RayBins, rayFactor int, minQuality, dbzClearsky, dbzPercentage float64) polar.Moment {
	nel := src.Nel()
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
		Ths:      polar.NewCube3D(nel, nazMax, nrMax),
		Qual:     polar.NewCube3D(nel, nazMax, nrMax),
	}

	globalDbzMin, _ := polar.NanMinMax3D(src.Meas)

	for e := 0; e < nel; e++ {
		naz := src.Naz[e]
		measRolled := rollAzimuth(src.Meas[e], naz, zmax)
		var thRolled, qualRolled [][]float64
		if src.Ths != nil {
			thRolled = rollAzimuth(src.Ths[e], naz, zmax)
		}
		if src.Qual != nil {
			qualRolled = rollAzimuth(src.Qual[e], naz, zmax)
		}

		borders := rb.RangeBorders[e]
		nrPrime := g.NrPrime[e]
		nazPrime := g.NazPrime[e]

		for k := 0; k < nazPrime; k++ {
			for j := 0; j < nrPrime; j++ {
				startBin, endBin := borders[j], borders[j+1]
				startRay, endRay := rb.StartRay[e][j][k], rb.EndRay[e][j][k]

				var nWet, nDry, nThWet int
				var wetSum, thWetSum float64

				for a := startRay; a < endRay; a++ {
					aw := wrapIndex(a, naz)
					for r := startBin; r < endBin; r++ {
						var q float64
						if qualRolled != nil {
							q = qualRolled[aw][r]
						}
						if math.IsNaN(q) || q <= minQuality {
							continue
						}
						meas := measRolled[aw][r]
						if math.IsNaN(meas) {
							continue
						}
						if meas > dbzClearsky {
							nWet++
							wetSum += meas
							if thRolled != nil {
								th := thRolled[aw][r]
								if !math.IsNaN(th) && th < 1e5 {
									thWetSum += th
									nThWet++
								}
							}
						} else {
							nDry++
						}
					}
				}

				n := (endRay - startRay) * (endBin - startBin)
				switch {
				case float64(nWet) > dbzPercentage*float64(n):
					dst.Meas[e][k][j] = wetSum / float64(nWet)
					dst.Qual[e][k][j] = 1.0
					if nThWet > 0 {
						dst.Ths[e][k][j] = thWetSum / float64(nThWet)
					}
				case nDry > 0:
					dst.Meas[e][k][j] = globalDbzMin
					dst.Qual[e][k][j] = 1.0
				}
			}
		}
	}

	return dst
}
