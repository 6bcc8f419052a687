// Command genfixture emits a synthetic PolarVolume fixture (a JSON Bundle,
// see internal/fixture) for exercising cmd/accordcore or manual testing
// without a real ODIM-H5 file. It builds a cosine wind field for VRAD and
// a simple wet/dry azimuth-sector pattern for DBZ, the same style of synthetic
// scenario used by internal/dealias and internal/superob's own tests.
//
// Usage:
//
//	go run ./cmd/genfixture -out fixture.json -naz 36 -nr 40 -elevations 3
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/PSmerkol/AccordPreprocTools/internal/fixture"
	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the fixture JSON bundle")
	naz := flag.Int("naz", 36, "rays per elevation")
	nr := flag.Int("nr", 40, "range gates per elevation")
	nel := flag.Int("elevations", 3, "number of elevations")
	vny := flag.Float64("vny", 25, "Nyquist velocity, m/s")
	windSpeed := flag.Float64("wind-speed", 15, "true wind speed used to build the synthetic VRAD field, m/s")
	siteHeight := flag.Float64("site-height", 120, "radar feedhorn height above sea level, meters")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	v := buildVolume(*nel, *naz, *nr, *vny, *windSpeed, *siteHeight)

	data, err := fixture.EncodeVolume(v)
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o600); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	log.Printf("wrote fixture: %s (elevations=%d naz=%d nr=%d)", *out, *nel, *naz, *nr)
	return nil
}

func buildVolume(nel, naz, nr int, vny, windSpeed, siteHeight float64) *polar.Volume {
	elangles := make([]float64, nel)
	for e := range elangles {
		elangles[e] = float64(e) * 2 * math.Pi / 180 // 0, 2, 4 degrees...
	}

	vrad := polar.Moment{
		NazMax:  naz,
		NrMax:   nr,
		Elangle: elangles,
		Naz:     make([]int, nel),
		Nr:      make([]int, nel),
		Rstart:  make([]float64, nel),
		Rscale:  make([]float64, nel),
		Vny:     make([]float64, nel),
	}
	dbz := polar.Moment{
		NazMax: naz,
		NrMax:  nr,
		Naz:    make([]int, nel),
		Nr:     make([]int, nel),
		Rstart: make([]float64, nel),
		Rscale: make([]float64, nel),
	}

	vrad.Azimuths = make([][]float64, nel)
	vrad.Ranges = make([][]float64, nel)
	dbz.Azimuths = make([][]float64, nel)
	dbz.Ranges = make([][]float64, nel)
	vrad.Meas = polar.NewCube3D(nel, naz, nr)
	dbz.Meas = polar.NewCube3D(nel, naz, nr)
	dbz.Qual = polar.NewCube3D(nel, naz, nr)
	dbz.Ths = polar.NewCube3D(nel, naz, nr)

	for e := 0; e < nel; e++ {
		vrad.Naz[e], vrad.Nr[e] = naz, nr
		vrad.Rstart[e], vrad.Rscale[e] = 0, 500
		vrad.Vny[e] = vny
		dbz.Naz[e], dbz.Nr[e] = naz, nr
		dbz.Rstart[e], dbz.Rscale[e] = 0, 500

		vrad.Azimuths[e] = make([]float64, naz)
		polar.Linspace(vrad.Azimuths[e], 0, 2*math.Pi, naz)
		dbz.Azimuths[e] = vrad.Azimuths[e]

		vrad.Ranges[e] = make([]float64, nr)
		dbz.Ranges[e] = make([]float64, nr)
		for r := 0; r < nr; r++ {
			vrad.Ranges[e][r] = float64(r+1) * vrad.Rscale[e]
			dbz.Ranges[e][r] = vrad.Ranges[e][r]
		}

		cosEl := math.Cos(elangles[e])
		for a := 0; a < naz; a++ {
			az := vrad.Azimuths[e][a]
			trueRadial := cosEl * windSpeed * math.Cos(az)
			folded := trueRadial - 2*vny*math.Round(trueRadial/(2*vny))
			for r := 0; r < nr; r++ {
				vrad.Meas[e][a][r] = folded

				// A wet sector on the first third of azimuths, dry beyond.
				if a < naz/3 {
					dbz.Meas[e][a][r] = 25 + 5*math.Sin(float64(r))
				} else {
					dbz.Meas[e][a][r] = -20
				}
				dbz.Qual[e][a][r] = 1.0
				dbz.Ths[e][a][r] = dbz.Meas[e][a][r]
			}
		}
	}

	return &polar.Volume{SiteHeight: siteHeight, Vrad: vrad, Dbz: dbz}
}
