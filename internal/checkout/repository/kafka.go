package repository

import (
	"context"

	"github.com/fekuna/omnipos-sale-terminal/pkg/broker"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, payload any) error {
	return broker.PublishJSON(ctx, p.writer, key, payload)
}
