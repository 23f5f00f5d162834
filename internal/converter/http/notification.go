package converter

import (
	"github.com/samber/lo"

	"github.com/simoilconte/Bensine/internal/model"
	apiv1 "github.com/simoilconte/Bensine/pkg/api/v1"
)

func NotificationToAPI(n *model.Notification) apiv1.Notification {
	return apiv1.Notification{
		ID:          n.ID,
		Channel:     string(n.Channel),
		Recipient:   n.Recipient,
		TemplateKey: n.TemplateKey,
		Data:        n.Data,
		Status:      string(n.Status),
		RetryCount:  n.RetryCount,
		LastError:   n.LastError,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func NotificationsToAPI(list []*model.Notification) []apiv1.Notification {
	return lo.Map(list, func(n *model.Notification, _ int) apiv1.Notification { return NotificationToAPI(n) })
}

func EventsToAPI(list []*model.Event) []apiv1.Event {
	return lo.Map(list, func(e *model.Event, _ int) apiv1.Event {
		return apiv1.Event{
			ID:          e.ID,
			Type:        string(e.Type),
			EntityType:  string(e.EntityType),
			EntityID:    e.EntityID,
			Payload:     e.Payload,
			ActorUserID: e.ActorUserID,
			CreatedAt:   e.CreatedAt,
		}
	})
}
