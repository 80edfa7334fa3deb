package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus is the delivery state of a queued side effect.
type OutboxStatus string

const (
	OutboxPending OutboxStatus = "pending"
	OutboxSent    OutboxStatus = "sent"
	OutboxFailed  OutboxStatus = "failed"
)

// OutboxKind names the side effect a message carries.
type OutboxKind string

const (
	OutboxRestaurantNotify OutboxKind = "restaurant_order_update"
)

// OutboxMessage is a queued non-critical side effect. Writing the message is
// part of the financial operation; delivering it is not, so delivery can be
// retried without re-running the money mutation.
type OutboxMessage struct {
	ID            uuid.UUID       `json:"id"`
	Kind          OutboxKind      `json:"kind"`
	Payload       json.RawMessage `json:"payload"`
	Status        OutboxStatus    `json:"status"`
	Attempts      int             `json:"attempts"`
	NextAttemptAt time.Time       `json:"next_attempt_at"`
	LastError     *string         `json:"last_error,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	SentAt        *time.Time      `json:"sent_at,omitempty"`
}

// RestaurantNotifyPayload is the payload for OutboxRestaurantNotify messages.
type RestaurantNotifyPayload struct {
	OrderID      string `json:"order_id"`
	RestaurantID string `json:"restaurant_id"`
	NewStatus    string `json:"new_status"`
	Reason       string `json:"reason,omitempty"`
}

// NewRestaurantNotifyMessage queues an order-update notification.
func NewRestaurantNotifyMessage(p RestaurantNotifyPayload) (*OutboxMessage, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &OutboxMessage{
		ID:            uuid.New(),
		Kind:          OutboxRestaurantNotify,
		Payload:       raw,
		Status:        OutboxPending,
		NextAttemptAt: now,
		CreatedAt:     now,
	}, nil
}
