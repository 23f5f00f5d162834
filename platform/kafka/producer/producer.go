package producer

import (
	"context"

	"github.com/IBM/sarama"

	"github.com/simoilconte/Bensine/platform/kafka"
	"github.com/simoilconte/Bensine/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type producer struct {
	syncProducer sarama.SyncProducer
	topic        string
	logger       Logger
}

func NewProducer(syncProducer sarama.SyncProducer, topic string, logger Logger) *producer {
	return &producer{
		syncProducer: syncProducer,
		topic:        topic,
		logger:       logger,
	}
}

func (p *producer) Send(ctx context.Context, key, value []byte, headers ...kafka.Header) error {
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	for _, h := range headers {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{
			Key:   []byte(h.Key),
			Value: h.Value,
		})
	}

	partition, offset, err := p.syncProducer.SendMessage(msg)
	if err != nil {
		p.logger.Error(ctx, "Failed to send message",
			logger.String("topic", p.topic),
			logger.ErrorF(err),
		)
		return err
	}

	p.logger.Info(ctx, "Message sent",
		logger.String("topic", p.topic),
		logger.Any("partition", partition),
		logger.Int64("offset", offset),
		logger.String("key", string(key)),
		logger.Int("value_bytes", len(value)),
	)

	return nil
}

// Noop is used when messaging is switched off in config.
type Noop struct{}

func (Noop) Send(context.Context, []byte, []byte, ...kafka.Header) error { return nil }
