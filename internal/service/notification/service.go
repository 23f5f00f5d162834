package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/internal/service/policy"
	"github.com/simoilconte/Bensine/platform/logger"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (uuid.UUID, error)
	NotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	ListByStatus(ctx context.Context, status model.NotificationStatus) ([]*model.Notification, error)
	UpdateDelivery(ctx context.Context, n *model.Notification) error
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type service struct {
	repo           NotificationRepository
	tx             TxManager
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewNotificationService(
	repository NotificationRepository,
	tx TxManager,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		repo:           repository,
		tx:             tx,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// Enqueue inserts a PENDING row. It joins the transaction carried by ctx, if any. An empty
// recipient is stored as is and left for the sender to fail.
func (svc *service) Enqueue(ctx context.Context, params model.EnqueueParams) (*model.Notification, error) {
	const op string = "notification.service.Enqueue"

	if strings.TrimSpace(params.TemplateKey) == "" {
		return nil, fmt.Errorf("%s: %w", op, model.Invalid("template key is required"))
	}
	if !params.Channel.Valid() {
		return nil, fmt.Errorf("%s: %w", op, model.Invalid("unknown channel %q", params.Channel))
	}

	n := &model.Notification{
		Channel:     params.Channel,
		Recipient:   strings.TrimSpace(params.Recipient),
		TemplateKey: params.TemplateKey,
		Data:        params.Data,
		Status:      model.NotificationPending,
		RetryCount:  0,
	}

	if _, err := svc.repo.Create(ctx, n); err != nil {
		logger.Error(ctx, "repository create notification",
			logger.String("template_key", params.TemplateKey),
			logger.ErrorF(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (svc *service) ListPending(ctx context.Context, actor *model.User) ([]*model.Notification, error) {
	const op string = "notification.service.ListPending"

	if err := policy.RequireAdmin(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	list, err := svc.repo.ListByStatus(ctx, model.NotificationPending)
	if err != nil {
		logger.Error(ctx, "repository list pending notifications", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

func (svc *service) MarkSent(ctx context.Context, actor *model.User, id uuid.UUID) error {
	const op string = "notification.service.MarkSent"

	if err := policy.RequireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := svc.markSent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (svc *service) MarkFailed(ctx context.Context, actor *model.User, id uuid.UUID, errText string) error {
	const op string = "notification.service.MarkFailed"

	if err := policy.RequireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := svc.markFailed(ctx, id, errText); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Retry resets a FAILED notification so the sender picks it up again.
func (svc *service) Retry(ctx context.Context, actor *model.User, id uuid.UUID) error {
	const op string = "notification.service.Retry"

	if err := policy.RequireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := svc.modify(ctx, id, func(n *model.Notification) error {
		if n.Status != model.NotificationFailed {
			return model.ErrNotificationNotFailed
		}
		n.Status = model.NotificationPending
		n.RetryCount = 0
		n.LastError = nil
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ApplyDeliveryReport records the outcome reported by the external sender.
func (svc *service) ApplyDeliveryReport(ctx context.Context, report model.DeliveryReport) error {
	const op string = "notification.service.ApplyDeliveryReport"

	var err error
	if report.Delivered {
		err = svc.markSent(ctx, report.NotificationID)
	} else {
		err = svc.markFailed(ctx, report.NotificationID, report.Error)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (svc *service) markSent(ctx context.Context, id uuid.UUID) error {
	return svc.modify(ctx, id, func(n *model.Notification) error {
		n.Status = model.NotificationSent
		return nil
	})
}

func (svc *service) markFailed(ctx context.Context, id uuid.UUID, errText string) error {
	return svc.modify(ctx, id, func(n *model.Notification) error {
		*n = n.AfterFailure(errText)
		return nil
	})
}

func (svc *service) modify(ctx context.Context, id uuid.UUID, apply func(n *model.Notification) error) error {
	log := logger.With(logger.String("notification_id", id.String()))

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	return svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := svc.repo.NotificationByID(ctx, id)
		if err != nil {
			log.Error(ctx, "repository notification by id", logger.ErrorF(err))
			return err
		}

		if err := apply(n); err != nil {
			log.Warn(ctx, "notification state rejected", logger.String("status", string(n.Status)))
			return err
		}

		if err := svc.repo.UpdateDelivery(ctx, n); err != nil {
			log.Error(ctx, "repository update notification", logger.ErrorF(err))
			return err
		}

		log.Info(ctx, "notification updated",
			logger.String("status", string(n.Status)),
			logger.Int("retry_count", n.RetryCount),
		)
		return nil
	})
}
