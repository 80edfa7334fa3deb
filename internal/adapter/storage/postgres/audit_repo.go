package postgres

import (
	"context"
	"fmt"

	"marketplace-settlement/internal/core/domain"
)

// AuditRepo implements ports.AuditRepository. Entries are append-only; there
// is no update or delete path.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Create appends an audit entry.
func (r *AuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	query := `INSERT INTO audit_logs (id, entity_type, entity_id, action, action_type,
		performed_by_kind, performed_by_id, changes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action, entry.ActionType,
		entry.PerformedByKind, entry.PerformedByID, entry.Changes, entry.Status, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
