package dlvconsumer

import (
	"context"
	"errors"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/platform/kafka"
	"github.com/simoilconte/Bensine/platform/logger"
)

type Converter interface {
	DeliveryReportToModel(data []byte) (model.DeliveryReport, error)
}

type DeliveryService interface {
	ApplyDeliveryReport(ctx context.Context, report model.DeliveryReport) error
}

type service struct {
	consumer kafka.Consumer
	conv     Converter
	svc      DeliveryService
}

func NewDeliveryConsumer(
	consumer kafka.Consumer,
	conv Converter,
	svc DeliveryService,
) *service {
	return &service{consumer: consumer, conv: conv, svc: svc}
}

func (s *service) RunDeliveryConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting delivery report consumer")

	if err := s.consumer.Consume(ctx, s.deliveryHandler); err != nil {
		logger.Error(ctx, "Consume from notification delivery topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

// deliveryHandler acknowledges malformed and unknown reports so they are not redelivered.
func (s *service) deliveryHandler(ctx context.Context, msg kafka.Message) error {
	report, err := s.conv.DeliveryReportToModel(msg.Value)
	if err != nil {
		logger.Warn(ctx, "Skipping malformed delivery report",
			logger.Int64("offset", msg.Offset),
			logger.ErrorF(err),
		)
		return nil
	}

	if err := s.svc.ApplyDeliveryReport(ctx, report); err != nil {
		if errors.Is(err, model.ErrNotificationNotFound) {
			logger.Warn(ctx, "Delivery report for unknown notification",
				logger.String("notification_id", report.NotificationID.String()),
			)
			return nil
		}
		logger.Error(ctx, "Failed to apply delivery report", logger.ErrorF(err))
		return err
	}

	return nil
}
