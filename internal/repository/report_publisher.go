package repository

import (
	"context"
	"fmt"

	"EdgeScan/internal/domain/models"
	"EdgeScan/internal/domain/repository"
	pkgkafka "EdgeScan/pkg/kafka"
)

// KafkaReportPublisher implements ReportPublisher for Kafka. Reports are
// keyed by symbol so downstream consumers see every scan of one instrument
// on the same partition, in order.
type KafkaReportPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaReportPublisher creates a Kafka report publisher.
func NewKafkaReportPublisher(producer *pkgkafka.Producer, topic string) repository.ReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

func (p *KafkaReportPublisher) Publish(ctx context.Context, report *models.ScanReport) error {
	if p.producer == nil {
		return fmt.Errorf("kafka publisher not configured")
	}
	return p.producer.Publish(ctx, p.topic, []byte(report.Symbol), report)
}

func (p *KafkaReportPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
