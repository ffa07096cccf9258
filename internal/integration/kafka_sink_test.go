//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/penguin-chart/internal/adapter/csvfile"
	"github.com/couchcryptid/penguin-chart/internal/adapter/kafka"
	"github.com/couchcryptid/penguin-chart/internal/config"
	"github.com/couchcryptid/penguin-chart/internal/observability"
	"github.com/couchcryptid/penguin-chart/internal/pipeline"
	"github.com/couchcryptid/penguin-chart/internal/render/plotly"
	"github.com/couchcryptid/penguin-chart/internal/render/vegalite"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const (
	testTopic  = "test-penguin-charts"
	samplePath = "../adapter/csvfile/testdata/penguins_sample.csv"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("penguin-chart-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPipelinePublishesArtifacts runs the full pipeline against the sample CSV
// with Kafka as the only sink and reads every artifact back.
func TestPipelinePublishesArtifacts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(
		csvfile.NewReader(samplePath, nil, discardLogger()),
		pipeline.NewTransformer(discardLogger()),
		[]pipeline.Renderer{vegalite.NewRenderer(), plotly.NewRenderer()},
		[]pipeline.Loader{writer},
		discardLogger(), observability.NewMetricsForTesting(), nil,
	)

	res, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Report.Kept)
	require.Len(t, res.Artifacts, 2)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  32 << 20,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	got := map[string]kafkago.Message{}
	for len(got) < len(res.Artifacts) {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from chart topic")
		got[string(msg.Key)] = msg
	}

	for _, a := range res.Artifacts {
		msg, ok := got[a.Name]
		require.True(t, ok, "missing message for %s", a.Name)
		assert.Equal(t, a.Body, msg.Value)

		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, a.Renderer, headers["renderer"])
		assert.Equal(t, a.ContentType, headers["content_type"])
	}
}
