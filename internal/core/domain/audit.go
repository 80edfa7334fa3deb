package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditActorKind identifies who performed an audited action.
type AuditActorKind string

const (
	AuditActorSystem     AuditActorKind = "system"
	AuditActorAdmin      AuditActorKind = "admin"
	AuditActorUser       AuditActorKind = "user"
	AuditActorRestaurant AuditActorKind = "restaurant"
	AuditActorDelivery   AuditActorKind = "delivery"
)

// AuditEntry is an immutable record of one money-affecting state transition.
// Entries are append-only, written after the effect, and never authoritative
// over wallet balances.
type AuditEntry struct {
	ID              uuid.UUID      `json:"id"`
	EntityType      string         `json:"entity_type"` // settlement, wallet, order
	EntityID        string         `json:"entity_id"`
	Action          string         `json:"action"`      // escrow_held, escrow_released, refund_processed, ...
	ActionType      string         `json:"action_type"` // financial, status_change
	PerformedByKind AuditActorKind `json:"performed_by_kind"`
	PerformedByID   string         `json:"performed_by_id"`
	Changes         string         `json:"changes,omitempty"` // JSON before/after or transaction details
	Status          string         `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
}
