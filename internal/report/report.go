// Package report collects the warnings and errors a processing stage
// raises while working through a volume, mirroring HoofWorker's
// classMessage/warning/error bookkeeping from the original implementation.
package report

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Message is a single warning or error tagged with the stage that raised it
// (e.g. "dealias", "superob"), matching the classMessage tagging the
// original HoofWorker attached to every diagnostic.
type Message struct {
	Stage string
	Text  string
}

// Reporter accumulates diagnostics across a single volume's processing run.
// It is not safe for concurrent use; the driver creates one per volume.
type Reporter struct {
	Warnings []Message
	Errors   []Message
}

// New returns an empty Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Warningf records a formatted warning under the given stage tag.
func (r *Reporter) Warningf(stage, format string, args ...any) {
	r.Warnings = append(r.Warnings, Message{Stage: stage, Text: fmt.Sprintf(format, args...)})
}

// Errorf records a formatted error under the given stage tag.
func (r *Reporter) Errorf(stage, format string, args ...any) {
	r.Errors = append(r.Errors, Message{Stage: stage, Text: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any error-level diagnostic was recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.Errors) > 0
}

// Drain logs every accumulated message through logger, incrementing the
// warnings/errors counter vectors under each message's stage label, and
// clears the Reporter so it can be reused across successive stages of the
// same volume without double-reporting.
func (r *Reporter) Drain(logger *slog.Logger, warnings, errors *prometheus.CounterVec) {
	for _, m := range r.Warnings {
		logger.Warn(m.Text, "stage", m.Stage)
		warnings.WithLabelValues(m.Stage).Inc()
	}
	for _, m := range r.Errors {
		logger.Error(m.Text, "stage", m.Stage)
		errors.WithLabelValues(m.Stage).Inc()
	}
	r.Warnings = nil
	r.Errors = nil
}
