package apiv1

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID      `json:"id"`
	Channel     string         `json:"channel"`
	Recipient   string         `json:"recipient"`
	TemplateKey string         `json:"templateKey"`
	Data        map[string]any `json:"data"`
	Status      string         `json:"status"`
	RetryCount  int            `json:"retryCount"`
	LastError   *string        `json:"lastError,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type MarkFailedRequest struct {
	Error string `json:"error"`
}

type Event struct {
	ID          uuid.UUID      `json:"id"`
	Type        string         `json:"type"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityId"`
	Payload     map[string]any `json:"payload"`
	ActorUserID uuid.UUID      `json:"actorUserId"`
	CreatedAt   time.Time      `json:"createdAt"`
}
