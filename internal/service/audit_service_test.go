package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-settlement/internal/core/domain"
)

func waitForAudit(t *testing.T, repo *memAuditRepo, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if repo.count() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d audit entries, got %d", want, repo.count())
}

func TestAuditService_RecordWritesAsynchronously(t *testing.T) {
	repo := &memAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	svc.Record(context.Background(), &domain.AuditEntry{
		EntityType:      "settlement",
		EntityID:        "order-1",
		Action:          "escrow_held",
		ActionType:      "financial",
		PerformedByKind: domain.AuditActorSystem,
		Changes:         auditChanges(map[string]any{"escrow_amount": int64(12345)}),
	})

	waitForAudit(t, repo, 1)

	repo.mu.Lock()
	entry := repo.entries[0]
	repo.mu.Unlock()

	assert.Equal(t, "escrow_held", entry.Action)
	assert.Equal(t, "success", entry.Status)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NotEmpty(t, entry.ID)
	assert.Contains(t, entry.Changes, "12345")
}

func TestAuditService_RecordSurvivesCancelledCaller(t *testing.T) {
	repo := &memAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	// The caller's context is already cancelled; the write still happens on
	// a detached context.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Record(ctx, &domain.AuditEntry{
		EntityType: "wallet",
		EntityID:   "wallet-1",
		Action:     "transaction_appended",
	})

	waitForAudit(t, repo, 1)
}

func TestAuditService_NilEntryIgnored(t *testing.T) {
	repo := &memAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	svc.Record(context.Background(), nil)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 0, repo.count())
}
