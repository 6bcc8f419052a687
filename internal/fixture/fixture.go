// Package fixture provides a JSON encoding for the two moments
// (Vrad/Dbz) that seed a polar.Volume, used by cmd/genfixture to emit
// synthetic test inputs and by cmd/accordcore to read them back.
//
// encoding/json has no representation for NaN, which polar.Moment uses
// pervasively as its missing-value sentinel, so cube fields round-trip
// through a nullable-float mirror type instead of encoding polar.Moment
// directly. This is ambient serialization glue with no analog in the
// teacher or the retrieved pack (none of the pack's JSON usage carries
// NaN-valued numeric grids), so it is authored directly against
// encoding/json rather than sourced from a third-party codec.
package fixture

import (
	"encoding/json"
	"math"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
)

// Bundle is the on-disk fixture format: everything needed to seed a
// polar.Volume before it enters the core.
type Bundle struct {
	SiteHeight float64    `json:"site_height"`
	Vrad       momentJSON `json:"vrad"`
	Dbz        momentJSON `json:"dbz"`
}

type momentJSON struct {
	NazMax int `json:"naz_max"`
	NrMax  int `json:"nr_max"`

	Elangle []float64 `json:"elangle"`
	Naz     []int     `json:"naz"`
	Nr      []int     `json:"nr"`
	Rstart  []float64 `json:"rstart"`
	Rscale  []float64 `json:"rscale"`
	Vny     []float64 `json:"vny,omitempty"`

	Azimuths [][]float64 `json:"azimuths"`
	Ranges   [][]float64 `json:"ranges"`

	Meas [][][]*float64 `json:"meas"`
	Ths  [][][]*float64 `json:"ths,omitempty"`
	Qual [][][]*float64 `json:"qual,omitempty"`
	Zs   [][][]*float64 `json:"zs,omitempty"`
}

// EncodeVolume marshals the Vrad/Dbz inputs of v into a fixture Bundle.
func EncodeVolume(v *polar.Volume) ([]byte, error) {
	b := Bundle{
		SiteHeight: v.SiteHeight,
		Vrad:       toMomentJSON(&v.Vrad),
		Dbz:        toMomentJSON(&v.Dbz),
	}
	return json.MarshalIndent(b, "", "  ")
}

// DecodeVolume unmarshals a fixture Bundle into a fresh polar.Volume ready
// to be handed to the core.
func DecodeVolume(data []byte) (*polar.Volume, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &polar.Volume{
		SiteHeight: b.SiteHeight,
		Vrad:       fromMomentJSON(b.Vrad),
		Dbz:        fromMomentJSON(b.Dbz),
	}, nil
}

func toMomentJSON(m *polar.Moment) momentJSON {
	return momentJSON{
		NazMax:   m.NazMax,
		NrMax:    m.NrMax,
		Elangle:  m.Elangle,
		Naz:      m.Naz,
		Nr:       m.Nr,
		Rstart:   m.Rstart,
		Rscale:   m.Rscale,
		Vny:      m.Vny,
		Azimuths: m.Azimuths,
		Ranges:   m.Ranges,
		Meas:     cubeToJSON(m.Meas),
		Ths:      cubeToJSON(m.Ths),
		Qual:     cubeToJSON(m.Qual),
		Zs:       cubeToJSON(m.Zs),
	}
}

func fromMomentJSON(mj momentJSON) polar.Moment {
	return polar.Moment{
		NazMax:   mj.NazMax,
		NrMax:    mj.NrMax,
		Elangle:  mj.Elangle,
		Naz:      mj.Naz,
		Nr:       mj.Nr,
		Rstart:   mj.Rstart,
		Rscale:   mj.Rscale,
		Vny:      mj.Vny,
		Azimuths: mj.Azimuths,
		Ranges:   mj.Ranges,
		Meas:     cubeFromJSON(mj.Meas),
		Ths:      cubeFromJSON(mj.Ths),
		Qual:     cubeFromJSON(mj.Qual),
		Zs:       cubeFromJSON(mj.Zs),
	}
}

func cubeToJSON(c [][][]float64) [][][]*float64 {
	if c == nil {
		return nil
	}
	out := make([][][]*float64, len(c))
	for e, plane := range c {
		out[e] = make([][]*float64, len(plane))
		for a, row := range plane {
			outRow := make([]*float64, len(row))
			for r, v := range row {
				if math.IsNaN(v) {
					continue
				}
				vv := v
				outRow[r] = &vv
			}
			out[e][a] = outRow
		}
	}
	return out
}

func cubeFromJSON(c [][][]*float64) [][][]float64 {
	if c == nil {
		return nil
	}
	out := make([][][]float64, len(c))
	for e, plane := range c {
		out[e] = make([][]float64, len(plane))
		for a, row := range plane {
			outRow := make([]float64, len(row))
			for r, v := range row {
				if v == nil {
					outRow[r] = math.NaN()
					continue
				}
				outRow[r] = *v
			}
			out[e][a] = outRow
		}
	}
	return out
}
