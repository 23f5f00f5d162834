package service

import (
	"context"
	"strings"

	"github.com/simoilconte/Bensine/internal/model"
	"github.com/simoilconte/Bensine/platform/logger"
)

// notify enqueues an email for customers who opted in to sharing, even when the contact
// email is blank. It must run inside the mutation's transaction so the row commits with it.
func (svc *service) notify(
	ctx context.Context,
	customer *model.Customer,
	templateKey string,
	data map[string]any,
) (*model.Notification, error) {
	if customer == nil || !customer.Sharing.Notifiable() {
		return nil, nil
	}

	recipient := strings.TrimSpace(customer.Contacts.Email)
	if recipient == "" {
		logger.Warn(ctx, "customer has no email, queueing notification without recipient",
			logger.String("customer_id", customer.ID.String()),
			logger.String("template_key", templateKey),
		)
	}

	return svc.outbox.Enqueue(ctx, model.EnqueueParams{
		Channel:     model.ChannelEmail,
		Recipient:   recipient,
		TemplateKey: templateKey,
		Data:        data,
	})
}

func customerName(c *model.Customer) string {
	if c == nil || c.DisplayName == "" {
		return model.UnknownName
	}
	return c.DisplayName
}
