package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/logger"
)

// auditWriteTimeout bounds the detached write so a stuck database cannot pile
// up goroutines behind the caller's cancelled context.
const auditWriteTimeout = 5 * time.Second

// AuditServiceImpl persists audit entries asynchronously. The write happens on
// its own goroutine with a detached context; failures are logged and dropped,
// never surfaced to the financial operation being audited.
type AuditServiceImpl struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &AuditServiceImpl{
		repo: repo,
		log:  logger.Component(log, "audit_service"),
	}
}

func (s *AuditServiceImpl) Record(ctx context.Context, entry *domain.AuditEntry) {
	if entry == nil {
		return
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Status == "" {
		entry.Status = "success"
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	go func(e domain.AuditEntry) {
		writeCtx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		if err := s.repo.Create(writeCtx, &e); err != nil {
			s.log.Error().Err(err).
				Str("entity_type", e.EntityType).
				Str("entity_id", e.EntityID).
				Str("action", e.Action).
				Msg("failed to write audit entry")
		}
	}(*entry)
}

// auditChanges renders a change map as the JSON blob audit entries carry.
func auditChanges(changes map[string]any) string {
	raw, err := json.Marshal(changes)
	if err != nil {
		return ""
	}
	return string(raw)
}
