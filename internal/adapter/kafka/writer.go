package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/penguin-chart/internal/config"
	"github.com/couchcryptid/penguin-chart/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes rendered artifacts to a Kafka topic, one message per file.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured chart topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchBytes:   16 << 20,
	}
	return &Writer{writer: w, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "kafka" }

// Load publishes all artifacts in a single WriteMessages call.
func (w *Writer) Load(ctx context.Context, artifacts []domain.Artifact) error {
	if len(artifacts) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(artifacts))
	for i := range artifacts {
		msgs[i] = serializeToMessage(artifacts[i])
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Info("artifacts published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

// Close flushes pending messages and closes the underlying writer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage keys the message by file name so re-renders of the same
// artifact land on the same partition.
func serializeToMessage(a domain.Artifact) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(a.Name),
		Value: a.Body,
		Headers: []kafkago.Header{
			{Key: "renderer", Value: []byte(a.Renderer)},
			{Key: "content_type", Value: []byte(a.ContentType)},
			{Key: "size", Value: []byte(strconv.Itoa(len(a.Body)))},
		},
	}
}
