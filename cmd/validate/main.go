// Command validate runs a fixture bundle (see internal/fixture) through
// the dealiasing/superobing core and checks the resulting PolarVolume
// against the invariants of spec.md §3 and the universal properties of
// §8, printing a pass/fail report per phase.
//
// Usage:
//
//	go run ./cmd/validate -in fixture.json
package main

import (
	"fmt"
	"math"
	"os"

	"flag"

	"github.com/PSmerkol/AccordPreprocTools/internal/config"
	"github.com/PSmerkol/AccordPreprocTools/internal/dealias"
	"github.com/PSmerkol/AccordPreprocTools/internal/fixture"
	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"github.com/PSmerkol/AccordPreprocTools/internal/report"
	"github.com/PSmerkol/AccordPreprocTools/internal/superob"
)

// phase tracks pass/fail for one invariant check.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	in := flag.String("in", "", "path to a fixture JSON bundle")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*in); code != 0 {
		os.Exit(code)
	}
}

func run(inPath string) int {
	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read fixture: %v\n", err)
		return 1
	}
	v, err := fixture.DecodeVolume(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: decode fixture: %v\n", err)
		return 1
	}

	s := config.Defaults()

	fmt.Println("=== Polar Volume Invariant Validation ===")
	fmt.Println()

	if err := dealias.Run(v, &s, report.New()); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: dealiasing: %v\n", err)
		return 1
	}
	if err := superob.Run(v, &s, report.New()); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: superobing: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateMomentBounds(&v.Vrad),
		validateMomentBounds(&v.Dbz),
		validateVRADRange(&v.Vrad),
		validateQuality(&v.Dbz),
		validateDealiasFolding(v, &s),
		validateSuperobDimensions(v, s.RangeBinFactor, s.RayAngleFactor),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			allPassed = false
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("       - %s\n", e)
		}
	}

	fmt.Println()
	if allPassed {
		fmt.Println("All invariants satisfied.")
		return 0
	}
	fmt.Println("One or more invariants failed.")
	return 1
}

// validateMomentBounds checks spec.md §3 invariant 1: cells beyond
// naz[e]/nr[e] (the padding up to NazMax/NrMax) are NaN.
func validateMomentBounds(m *polar.Moment) *phase {
	p := &phase{name: fmt.Sprintf("moment bounds (%d elevations)", m.Nel())}
	for e := 0; e < m.Nel(); e++ {
		for a, row := range m.Meas[e] {
			for r, v := range row {
				if (a >= m.Naz[e] || r >= m.Nr[e]) && !math.IsNaN(v) {
					p.errorf("bin (%d,%d,%d): %.3f beyond naz=%d/nr=%d, want NaN", e, a, r, v, m.Naz[e], m.Nr[e])
				}
			}
		}
	}
	return p
}

// validateVRADRange checks spec.md §3 invariant 4.
func validateVRADRange(vrad *polar.Moment) *phase {
	p := &phase{name: "VRAD within Nyquist bound"}
	for e := 0; e < vrad.Nel(); e++ {
		for a, row := range vrad.Meas[e] {
			for r, v := range row {
				if math.IsNaN(v) {
					continue
				}
				if math.Abs(v) > vrad.Vny[e]+1e-9 {
					p.errorf("bin (%d,%d,%d): |%.3f| > vny=%.3f", e, a, r, v, vrad.Vny[e])
				}
			}
		}
	}
	return p
}

// validateQuality checks spec.md §3 invariant 5.
func validateQuality(dbz *polar.Moment) *phase {
	p := &phase{name: "quality values in [0,1]"}
	if dbz.Qual == nil {
		return p
	}
	for e := 0; e < dbz.Nel(); e++ {
		for a, row := range dbz.Qual[e] {
			for r, q := range row {
				if math.IsNaN(q) {
					continue
				}
				if q < 0 || q > 1 {
					p.errorf("bin (%d,%d,%d): quality %.3f out of [0,1]", e, a, r, q)
				}
			}
		}
	}
	return p
}

// validateDealiasFolding checks spec.md §8's universal folding property:
// dvrads - meas is an even multiple of vny within |k| <= floor(maxWind/vnyMin).
func validateDealiasFolding(v *polar.Volume, s *config.Settings) *phase {
	p := &phase{name: "dealias folding invariant"}
	if !v.DealiasingRan() {
		return p
	}
	vnyMin := math.Inf(1)
	for _, vny := range v.Vrad.Vny {
		if vny < vnyMin {
			vnyMin = vny
		}
	}
	nMax := int(math.Floor(s.MaxWind / vnyMin))

	for e := 0; e < v.Vrad.Nel(); e++ {
		vny := v.Vrad.Vny[e]
		for a, row := range v.Vrad.Meas[e] {
			for r, meas := range row {
				dv := v.Dvrads[e][a][r]
				if math.IsNaN(dv) || math.IsNaN(meas) {
					continue
				}
				k := (dv - meas) / (2 * vny)
				kRounded := math.Round(k)
				if math.Abs(k-kRounded) > 1e-6 {
					p.errorf("bin (%d,%d,%d): (dvrads-meas)/(2*vny)=%.6f is not an integer", e, a, r, k)
					continue
				}
				if int(math.Abs(kRounded)) > nMax {
					p.errorf("bin (%d,%d,%d): |k|=%d exceeds bound %d", e, a, r, int(math.Abs(kRounded)), nMax)
				}
			}
		}
	}
	return p
}

// validateSuperobDimensions checks spec.md §3 invariant 7.
func validateSuperobDimensions(v *polar.Volume, binFactor, rayFactor int) *phase {
	p := &phase{name: "superob dimensions"}
	if v.Sdbz.Nel() == 0 {
		return p
	}
	for e := 0; e < v.Dbz.Nel(); e++ {
		wantNaz := v.Dbz.Naz[e] / rayFactor
		wantNr := v.Dbz.Nr[e] / binFactor
		if v.Sdbz.Naz[e] != wantNaz {
			p.errorf("elevation %d: sdbz.naz=%d, want floor(%d/%d)=%d", e, v.Sdbz.Naz[e], v.Dbz.Naz[e], rayFactor, wantNaz)
		}
		if v.Sdbz.Nr[e] != wantNr {
			p.errorf("elevation %d: sdbz.nr=%d, want floor(%d/%d)=%d", e, v.Sdbz.Nr[e], v.Dbz.Nr[e], binFactor, wantNr)
		}
		wantRscale := float64(binFactor) * v.Dbz.Rscale[e]
		if math.Abs(v.Sdbz.Rscale[e]-wantRscale) > 1e-9 {
			p.errorf("elevation %d: sdbz.rscale=%.3f, want %.3f", e, v.Sdbz.Rscale[e], wantRscale)
		}
	}
	return p
}
