package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records one entry per ingestion batch and per scoring
// configuration change.
type AuditLog struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Details      string    `json:"details"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAuditLog creates a new AuditLog entry with a generated UUID
func NewAuditLog(action, resourceType, resourceID, details string) *AuditLog {
	return &AuditLog{
		ID:           uuid.New().String(),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    time.Now(),
	}
}
