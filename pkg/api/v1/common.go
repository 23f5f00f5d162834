// Package apiv1 holds the JSON contract of the /api/v1 HTTP surface.
package apiv1

import "github.com/google/uuid"

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

// RemoveResponse reports whether a catalog entry was deleted or only deactivated.
type RemoveResponse struct {
	Outcome string `json:"outcome"`
}
