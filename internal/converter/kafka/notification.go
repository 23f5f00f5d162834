package converter

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/simoilconte/Bensine/internal/model"
)

type notificationRecord struct {
	NotificationID string         `json:"notificationId"`
	Channel        string         `json:"channel"`
	Recipient      string         `json:"recipient"`
	TemplateKey    string         `json:"templateKey"`
	Subject        string         `json:"subject"`
	Body           string         `json:"body"`
	Data           map[string]any `json:"data"`
}

type deliveryReportRecord struct {
	NotificationID string `json:"notificationId"`
	Delivered      *bool  `json:"delivered"`
	Error          string `json:"error,omitempty"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) NotificationToPayload(n model.RenderedNotification) ([]byte, error) {
	data := n.Data
	if data == nil {
		data = map[string]any{}
	}

	payload, err := json.Marshal(notificationRecord{
		NotificationID: n.ID.String(),
		Channel:        string(n.Channel),
		Recipient:      n.Recipient,
		TemplateKey:    n.TemplateKey,
		Subject:        n.Subject,
		Body:           n.Body,
		Data:           data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}

	return payload, nil
}

func (c *kafkaConverter) DeliveryReportToModel(data []byte) (model.DeliveryReport, error) {
	var rec deliveryReportRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.DeliveryReport{}, fmt.Errorf("failed to unmarshal delivery report: %w", err)
	}

	id, err := uuid.Parse(rec.NotificationID)
	if err != nil {
		return model.DeliveryReport{}, fmt.Errorf("invalid notificationId %q: %w", rec.NotificationID, err)
	}
	if rec.Delivered == nil {
		return model.DeliveryReport{}, fmt.Errorf("delivery report %s: missing delivered flag", id)
	}

	return model.DeliveryReport{
		NotificationID: id,
		Delivered:      *rec.Delivered,
		Error:          rec.Error,
	}, nil
}
