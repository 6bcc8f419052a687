package odim

import (
	"fmt"

	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"github.com/PSmerkol/AccordPreprocTools/internal/quantize"
)

// task identifies which stage produced a quality dataset, per spec.md §6.
type task string

const (
	TaskDealiasing task = "dealiasing"
	TaskSuperobing task = "superobing"
)

// PersistMoment writes one moment's data, companion TH field (if present),
// and quality field under its own dataset group per elevation, following
// spec.md §6's persisted-state table: /where holds geometry, /data1/what,
// /data2/what, and /quality1/what hold the quantization each field was
// written with, /quality1/how names the producing stage.
//
// The dataset group for elevation e is m.Datasets[e] when the moment
// carries real per-elevation identifiers (e.g. a moment read back from an
// existing ODIM-H5 volume); otherwise it is synthesized as
// /dataset<groupOffset+e+1>. groupOffset lets callers give distinct
// moments (DBZ vs VRAD) disjoint group ranges within the same file,
// mirroring HoofSuperober::write's separate dataset group per moment.
func PersistMoment(f OutputFile, m *polar.Moment, t task, groupOffset int) error {
	for e := 0; e < m.Nel(); e++ {
		base := datasetGroup(m, e, groupOffset)

		if err := f.WriteAttribute(base+"/where", "nbins", float64(m.Nr[e])); err != nil {
			return err
		}
		if err := f.WriteAttribute(base+"/where", "nrays", float64(m.Naz[e])); err != nil {
			return err
		}
		if err := f.WriteAttribute(base+"/where", "rscale", m.Rscale[e]); err != nil {
			return err
		}

		if err := writeQuantizedField(f, base+"/data1", m.Meas[e], 255); err != nil {
			return err
		}
		if m.Ths != nil {
			if err := writeQuantizedField(f, base+"/data2", m.Ths[e], 255); err != nil {
				return err
			}
		}

		if m.Qual != nil {
			qEnc := quantize.Quality()
			qBytes := quantize.Encode(m.Qual[e], qEnc)
			if err := f.WriteDataset(base+"/quality1/data", "data", qBytes); err != nil {
				return err
			}
			qWhat := base + "/quality1/what"
			if err := f.WriteAttribute(qWhat, "gain", qEnc.Gain); err != nil {
				return err
			}
			if err := f.WriteAttribute(qWhat, "offset", qEnc.Offset); err != nil {
				return err
			}
			if err := f.WriteAttribute(base+"/quality1/how", "task", string(t)); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeQuantizedField quantizes one elevation's 2-D field and writes its
// /data/data dataset plus /what gain/offset/undetect/nodata attributes.
func writeQuantizedField(f OutputFile, dataBase string, field [][]float64, nodata byte) error {
	min, max := polar.NanMinMax2D(field)
	enc := quantize.Field(min, max, nodata)
	bytes := quantize.Encode(field, enc)

	if err := f.WriteDataset(dataBase+"/data", "data", bytes); err != nil {
		return err
	}
	what := dataBase + "/what"
	if err := f.WriteAttribute(what, "gain", enc.Gain); err != nil {
		return err
	}
	if err := f.WriteAttribute(what, "offset", enc.Offset); err != nil {
		return err
	}
	if err := f.WriteAttribute(what, "undetect", 0.0); err != nil {
		return err
	}
	return f.WriteAttribute(what, "nodata", float64(nodata))
}

// datasetGroup returns the ODIM dataset group path for elevation e of m.
func datasetGroup(m *polar.Moment, e, groupOffset int) string {
	if e < len(m.Datasets) && m.Datasets[e] != "" {
		return "/" + m.Datasets[e]
	}
	return fmt.Sprintf("/dataset%d", groupOffset+e+1)
}

// PersistDealiased writes the dealiaser's coarse-free VRAD result. The
// dealiaser does not change grid geometry, so it reuses vrad's own
// Naz/Nr/Rscale for /where and writes Dvrads in place of Meas.
func PersistDealiased(f OutputFile, vrad *polar.Moment, dvrads [][][]float64) error {
	shadow := *vrad
	shadow.Meas = dvrads
	shadow.Qual = nil
	return PersistMoment(f, &shadow, TaskDealiasing, 0)
}

// PersistSuperob writes a superobed moment (coarse DBZ or VRAD) as a full
// ODIM dataset tree in its own group range, offset by groupOffset so that
// distinct moments never collide on the same dataset group or overwrite
// each other's /where geometry.
func PersistSuperob(f OutputFile, coarse *polar.Moment, groupOffset int) error {
	return PersistMoment(f, coarse, TaskSuperobing, groupOffset)
}

// ReadNodata reads back the nodata byte value previously written for a
// dataset's "what" group, defaulting to 255 (VRAD/quality convention) if
// absent.
func ReadNodata(f OutputFile, path string) byte {
	v, ok := f.ReadAttribute(path, "nodata")
	if !ok {
		return 255
	}
	return byte(v)
}
