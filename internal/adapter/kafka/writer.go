package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/lake-report-service/internal/domain"
)

const messageKey = "norfork-lake"

// Writer publishes freshly fetched reservoir reports to a Kafka topic.
// It implements service.ReportPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the report topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishReservoirReport serializes the report and writes it to the topic.
// Only reports produced by a live fetch reach this point, so downstream
// consumers see at most one message per cache refresh.
func (w *Writer) PublishReservoirReport(ctx context.Context, report domain.ReservoirReport) error {
	msg, err := serializeToMessage(report)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish reservoir report: %w", err)
	}
	w.logger.Debug("published reservoir report", "readings", len(report.Hourly))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ReservoirReport into a Kafka message.
func serializeToMessage(report domain.ReservoirReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize reservoir report: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(messageKey),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "readings", Value: []byte(strconv.Itoa(len(report.Hourly)))},
		},
	}
	if len(report.Hourly) > 0 {
		msg.Headers = append(msg.Headers, kafkago.Header{
			Key:   "latest_reading",
			Value: []byte(report.Hourly[0].Timestamp.Format(time.RFC3339)),
		})
	}
	return msg, nil
}
