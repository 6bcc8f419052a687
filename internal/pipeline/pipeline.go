// Package pipeline drives one polar volume through the dealiasing and
// superobing stages, persists the result, and publishes a processing
// summary. Grounded on the teacher's internal/pipeline/pipeline.go
// extract-transform-load loop, generalized from a Kafka batch consumer to
// the single-threaded per-file model of spec.md §5: one file runs to
// completion, sequentially, before the next starts.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/PSmerkol/AccordPreprocTools/internal/config"
	"github.com/PSmerkol/AccordPreprocTools/internal/dealias"
	"github.com/PSmerkol/AccordPreprocTools/internal/observability"
	"github.com/PSmerkol/AccordPreprocTools/internal/odim"
	"github.com/PSmerkol/AccordPreprocTools/internal/polar"
	"github.com/PSmerkol/AccordPreprocTools/internal/report"
	"github.com/PSmerkol/AccordPreprocTools/internal/summary"
	"github.com/PSmerkol/AccordPreprocTools/internal/superob"
)

// SummaryPublisher publishes a per-file processing summary. Satisfied by
// *kafka.Publisher; a nil SummaryPublisher disables publishing.
type SummaryPublisher interface {
	Publish(ctx context.Context, s summary.ProcessingSummary) error
}

// Driver runs the core stages over successive volumes and reports through
// metrics, logging, and an optional summary publisher.
type Driver struct {
	settings  *config.Settings
	logger    *slog.Logger
	metrics   *observability.Metrics
	publisher SummaryPublisher
	ready     atomic.Bool
}

// New creates a Driver. publisher may be nil to skip summary publishing.
func New(s *config.Settings, logger *slog.Logger, metrics *observability.Metrics, publisher SummaryPublisher) *Driver {
	metrics.DealiasingEnabled.Set(boolToFloat(s.Dealiasing))
	metrics.SuperobingEnabled.Set(boolToFloat(s.Superobing))
	return &Driver{settings: s, logger: logger, metrics: metrics, publisher: publisher}
}

// CheckReadiness reports whether the driver has processed at least one
// file, satisfying internal/adapter/http.ReadinessChecker.
func (d *Driver) CheckReadiness(_ context.Context) error {
	if !d.ready.Load() {
		return errors.New("driver has not processed any files yet")
	}
	return nil
}

// ProcessFile runs dealiasing then superobing against v, persists the
// results through out, and publishes a ProcessingSummary. fileID is an
// opaque identifier (typically the source file's basename) used for
// logging and the summary event's key.
func (d *Driver) ProcessFile(ctx context.Context, fileID string, v *polar.Volume, out odim.OutputFile) error {
	start := time.Now()
	sum := summary.ProcessingSummary{FileID: fileID}

	if d.settings.Dealiasing {
		sum.DealiasingRan = true
		dealiasReporter := report.New()
		d.runStage("dealias", func() error { return dealias.Run(v, d.settings, dealiasReporter) })
		sum.DealiasWarnings = len(dealiasReporter.Warnings)
		sum.DealiasErrors = len(dealiasReporter.Errors)
		dealiasReporter.Drain(d.logger, d.metrics.StageWarnings, d.metrics.StageErrors)
		if sum.DealiasErrors > 0 {
			return d.abort(ctx, sum, start, "dealias")
		}
	}

	if d.settings.Superobing {
		sum.SuperobingRan = true
		superobReporter := report.New()
		d.runStage("superob", func() error { return superob.Run(v, d.settings, superobReporter) })
		sum.SuperobWarnings = len(superobReporter.Warnings)
		sum.SuperobErrors = len(superobReporter.Errors)
		superobReporter.Drain(d.logger, d.metrics.StageWarnings, d.metrics.StageErrors)
		if sum.SuperobErrors > 0 {
			return d.abort(ctx, sum, start, "superob")
		}
	}

	if err := persist(v, out); err != nil {
		d.logger.Error("persist failed", "file", fileID, "error", err)
		d.metrics.FilesFailed.Inc()
		sum.Duration = time.Since(start)
		d.publish(ctx, sum)
		return err
	}

	sum.Success = true
	sum.Duration = time.Since(start)
	d.metrics.FilesProcessed.Inc()
	d.ready.Store(true)
	d.publish(ctx, sum)
	return nil
}

// abort finalizes and publishes a summary for a file whose stage aborted
// with a fatal error, then returns that error to the caller.
func (d *Driver) abort(ctx context.Context, sum summary.ProcessingSummary, start time.Time, stage string) error {
	d.metrics.FilesFailed.Inc()
	sum.Duration = time.Since(start)
	d.publish(ctx, sum)
	return errFatalStage(stage)
}

func (d *Driver) runStage(stage string, run func() error) {
	timer := time.Now()
	_ = run()
	d.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(timer).Seconds())
}

func (d *Driver) publish(ctx context.Context, sum summary.ProcessingSummary) {
	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, sum); err != nil {
		d.logger.Warn("publish processing summary failed", "file", sum.FileID, "error", err)
		d.metrics.PublishErrors.Inc()
		return
	}
	d.metrics.SummariesPublished.Inc()
}

// persist writes each moment carried by v to out. Dealiasing overwrites the
// original fine-grid VRAD scans in place (HoofDealiaser::write reuses
// _data.vrad.datasets[i] rather than allocating new groups), so it keeps
// group offset 0. Superobing instead builds a brand new coarse-grid volume
// (HoofSuperober::write), so Sdbz and Svrad each get their own disjoint
// range after the fine-grid groups, keeping every moment's /where geometry
// from overwriting another's.
func persist(v *polar.Volume, out odim.OutputFile) error {
	offset := 0
	if v.DealiasingRan() {
		if err := odim.PersistDealiased(out, &v.Vrad, v.Dvrads); err != nil {
			return err
		}
		offset = v.Vrad.Nel()
	}
	if v.Sdbz.Nel() > 0 {
		if err := odim.PersistSuperob(out, &v.Sdbz, offset); err != nil {
			return err
		}
		offset += v.Sdbz.Nel()
	}
	if v.Svrad.Nel() > 0 {
		if err := odim.PersistSuperob(out, &v.Svrad, offset); err != nil {
			return err
		}
	}
	return nil
}

func errFatalStage(stage string) error {
	return errors.New(stage + " stage aborted this file")
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
