package ntfproducer

import (
	"context"
	"fmt"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/platform/kafka"
	"github.com/simoilconte/Bensine/platform/logger"
)

type Converter interface {
	NotificationToPayload(n model.RenderedNotification) ([]byte, error)
}

type Renderer interface {
	Render(n model.Notification) (model.RenderedNotification, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
	renderer Renderer
}

func NewNotificationProducer(producer kafka.Producer, conv Converter, renderer Renderer) *service {
	return &service{producer: producer, conv: conv, renderer: renderer}
}

// Announce renders n and publishes it keyed by notification id.
func (s *service) Announce(ctx context.Context, n model.Notification) error {
	rendered, err := s.renderer.Render(n)
	if err != nil {
		return fmt.Errorf("render notification error: %w", err)
	}

	payload, err := s.conv.NotificationToPayload(rendered)
	if err != nil {
		return fmt.Errorf("converter notification_to_payload error: %w", err)
	}

	headers := []kafka.Header{
		{Key: "template-key", Value: []byte(n.TemplateKey)},
		{Key: "channel", Value: []byte(n.Channel)},
	}
	if err := s.producer.Send(ctx, []byte(n.ID.String()), payload, headers...); err != nil {
		return fmt.Errorf("producer to notification outbox topic error: %w", err)
	}

	logger.Debug(ctx, "notification announced",
		logger.String("notification_id", n.ID.String()),
		logger.String("template_key", n.TemplateKey),
	)

	return nil
}

type discard struct{}

// NewDiscardAnnouncer is wired when Kafka is switched off. Rows stay PENDING in the outbox.
func NewDiscardAnnouncer() discard { return discard{} }

func (discard) Announce(ctx context.Context, n model.Notification) error {
	logger.Debug(ctx, "kafka disabled, notification left in outbox", logger.String("notification_id", n.ID.String()))
	return nil
}
