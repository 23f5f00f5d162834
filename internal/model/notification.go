package model

import (
	"time"

	"github.com/google/uuid"
)

type (
	NotificationChannel string
	NotificationStatus  string
)

const (
	ChannelEmail    NotificationChannel = "EMAIL"
	ChannelSMS      NotificationChannel = "SMS"
	ChannelWhatsApp NotificationChannel = "WHATSAPP"
	ChannelPush     NotificationChannel = "PUSH"
)

func (c NotificationChannel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp, ChannelPush:
		return true
	}
	return false
}

const (
	NotificationPending NotificationStatus = "PENDING"
	NotificationSent    NotificationStatus = "SENT"
	NotificationFailed  NotificationStatus = "FAILED"
)

// MaxDeliveryAttempts is the failure count at which a notification stops being retried.
const MaxDeliveryAttempts = 3

const (
	TemplatePartRequestCreated = "PART_REQUEST_CREATED"
	TemplatePartRequestStatus  = "PART_REQUEST_STATUS"
)

type Notification struct {
	ID          uuid.UUID
	Channel     NotificationChannel
	Recipient   string
	TemplateKey string
	Data        map[string]any
	Status      NotificationStatus
	RetryCount  int
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AfterFailure applies one failed delivery attempt.
func (n Notification) AfterFailure(errText string) Notification {
	out := n
	out.RetryCount++
	out.LastError = &errText
	if out.RetryCount >= MaxDeliveryAttempts {
		out.Status = NotificationFailed
	} else {
		out.Status = NotificationPending
	}
	return out
}

type EnqueueParams struct {
	Channel     NotificationChannel
	Recipient   string
	TemplateKey string
	Data        map[string]any
}

type DeliveryReport struct {
	NotificationID uuid.UUID
	Delivered      bool
	Error          string
}

// RenderedNotification is what gets handed to the external sender.
type RenderedNotification struct {
	Notification
	Subject string
	Body    string
}
