package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/PSmerkol/AccordPreprocTools/internal/config"
	"github.com/PSmerkol/AccordPreprocTools/internal/summary"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces per-file ProcessingSummary events to a Kafka topic
// after the core has finished with a volume. It is the only surviving
// half of the teacher's kafka.Writer: this domain reads input from a
// directory of ODIM-H5 files rather than a source topic, so there is no
// consumer side to keep.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
	clock  clockwork.Clock
}

// NewPublisher creates a Kafka producer for the configured summary topic.
func NewPublisher(s *config.Settings, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(s.KafkaBrokers...),
		Topic:        s.KafkaSummaryTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger, clock: clockwork.NewRealClock()}
}

// SetClock swaps the time source used to stamp published summaries;
// production code uses the real clock, tests inject a fake for
// deterministic timestamps.
func (p *Publisher) SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	p.clock = c
}

// Publish serializes and sends one ProcessingSummary to the summary topic.
func (p *Publisher) Publish(ctx context.Context, s summary.ProcessingSummary) error {
	if s.ProcessedAt.IsZero() {
		s.ProcessedAt = p.clock.Now()
	}
	msg, err := serializeToMessage(s)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(s summary.ProcessingSummary) (kafkago.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize processing summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(s.FileID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "success", Value: []byte(strconv.FormatBool(s.Success))},
		},
	}, nil
}
