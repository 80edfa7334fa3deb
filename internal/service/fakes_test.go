package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"
)

// fakeTx satisfies pgx.Tx for services that only Begin/Commit/Rollback. The
// in-memory repos ignore the transaction handle entirely.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeTransactor struct {
	beginErr error
}

func (f *fakeTransactor) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return fakeTx{}, nil
}

// memWalletRepo is an in-memory WalletRepository. The mutex stands in for the
// row locks the real implementation takes.
type memWalletRepo struct {
	mu        sync.Mutex
	wallets   map[uuid.UUID]*domain.Wallet
	byActor   map[string]uuid.UUID
	txns      map[uuid.UUID]*domain.Transaction
	txOrder   []uuid.UUID
	failOn    string // method name to fail, "" = never
	createErr error
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{
		wallets: make(map[uuid.UUID]*domain.Wallet),
		byActor: make(map[string]uuid.UUID),
		txns:    make(map[uuid.UUID]*domain.Transaction),
	}
}

func actorKey(actorID string, kind domain.ActorKind) string {
	return actorID + "|" + string(kind)
}

func (r *memWalletRepo) fail(method string) error {
	if r.failOn == method {
		return errors.New("simulated failure in " + method)
	}
	return nil
}

func (r *memWalletRepo) Create(_ context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	key := actorKey(w.ActorID, w.ActorKind)
	if _, exists := r.byActor[key]; exists {
		return errors.New("duplicate wallet")
	}
	cp := *w
	r.wallets[w.ID] = &cp
	r.byActor[key] = w.ID
	return nil
}

func (r *memWalletRepo) GetByActor(_ context.Context, actorID string, kind domain.ActorKind) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("GetByActor"); err != nil {
		return nil, err
	}
	id, ok := r.byActor[actorKey(actorID, kind)]
	if !ok {
		return nil, nil
	}
	cp := *r.wallets[id]
	return &cp, nil
}

func (r *memWalletRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWalletRepo) GetByActorForUpdate(ctx context.Context, _ pgx.Tx, actorID string, kind domain.ActorKind) (*domain.Wallet, error) {
	return r.GetByActor(ctx, actorID, kind)
}

func (r *memWalletRepo) GetByIDForUpdate(ctx context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	return r.GetByID(ctx, id)
}

func (r *memWalletRepo) UpdateDerived(_ context.Context, _ pgx.Tx, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("UpdateDerived"); err != nil {
		return err
	}
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *memWalletRepo) InsertTransaction(_ context.Context, _ pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("InsertTransaction"); err != nil {
		return err
	}
	cp := *t
	r.txns[t.ID] = &cp
	r.txOrder = append(r.txOrder, t.ID)
	return nil
}

func (r *memWalletRepo) GetTransaction(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memWalletRepo) GetTransactionForUpdate(ctx context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	return r.GetTransaction(ctx, id)
}

func (r *memWalletRepo) UpdateTransactionStatus(_ context.Context, _ pgx.Tx, id uuid.UUID, status domain.TransactionStatus, processedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[id]
	if !ok {
		return errors.New("transaction not found")
	}
	t.Status = status
	t.ProcessedAt = &processedAt
	return nil
}

func (r *memWalletRepo) ListTransactions(_ context.Context, walletID uuid.UUID, limit, offset int) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Transaction
	// Newest first.
	for i := len(r.txOrder) - 1; i >= 0; i-- {
		t := r.txns[r.txOrder[i]]
		if t.WalletID != walletID {
			continue
		}
		out = append(out, *t)
	}
	if offset >= len(out) {
		return []domain.Transaction{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memWalletRepo) HasCompletedForOrder(_ context.Context, walletID uuid.UUID, txType domain.TransactionType, orderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("HasCompletedForOrder"); err != nil {
		return false, err
	}
	for _, t := range r.txns {
		if t.WalletID == walletID && t.Type == txType && t.Status == domain.TransactionCompleted &&
			t.OrderID != nil && *t.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

// memSettlementRepo is an in-memory SettlementRepository with the same
// guarded-transition semantics as the SQL implementation.
type memSettlementRepo struct {
	mu      sync.Mutex
	records map[string]*domain.SettlementRecord
}

func newMemSettlementRepo() *memSettlementRepo {
	return &memSettlementRepo{records: make(map[string]*domain.SettlementRecord)}
}

func (r *memSettlementRepo) Create(_ context.Context, rec *domain.SettlementRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[rec.OrderID]; exists {
		return errors.New("duplicate settlement record")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cp := *rec
	r.records[rec.OrderID] = &cp
	return nil
}

func (r *memSettlementRepo) GetByOrderID(_ context.Context, orderID string) (*domain.SettlementRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[orderID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	if rec.Cancellation != nil {
		det := *rec.Cancellation
		cp.Cancellation = &det
	}
	return &cp, nil
}

func (r *memSettlementRepo) ClaimRelease(_ context.Context, orderID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[orderID]
	if !ok {
		return false, errors.New("settlement record not found")
	}
	if !rec.CanRelease() {
		return false, nil
	}
	rec.EscrowStatus = domain.EscrowReleased
	rec.SettlementStatus = domain.SettlementCompleted
	rec.EscrowReleasedAt = &at
	rec.UpdatedAt = at
	return true, nil
}

func (r *memSettlementRepo) ClaimCancellation(_ context.Context, orderID string, det *domain.CancellationDetails, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[orderID]
	if !ok {
		return false, errors.New("settlement record not found")
	}
	if !rec.CanCancel() {
		return false, nil
	}
	cp := *det
	rec.EscrowStatus = domain.EscrowRefunded
	rec.SettlementStatus = domain.SettlementCancelled
	rec.EscrowRefundedAt = &at
	rec.Cancellation = &cp
	rec.RestaurantEarning.Status = domain.EarningCancelled
	rec.DeliveryEarning.Status = domain.EarningCancelled
	rec.AdminEarning.Status = domain.EarningCancelled
	rec.UpdatedAt = at
	return true, nil
}

func (r *memSettlementRepo) SetEarningStatus(_ context.Context, orderID string, party ports.SettlementParty, status domain.EarningStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[orderID]
	if !ok {
		return errors.New("settlement record not found")
	}
	switch party {
	case ports.PartyRestaurant:
		rec.RestaurantEarning.Status = status
		rec.RestaurantEarning.CreditedAt = &at
	case ports.PartyDelivery:
		rec.DeliveryEarning.Status = status
		rec.DeliveryEarning.CreditedAt = &at
	case ports.PartyAdmin:
		rec.AdminEarning.Status = status
		rec.AdminEarning.CreditedAt = &at
	}
	rec.UpdatedAt = at
	return nil
}

func (r *memSettlementRepo) SaveCancellationCalculation(_ context.Context, orderID string, det *domain.CancellationDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[orderID]
	if !ok {
		return errors.New("settlement record not found")
	}
	cp := *det
	rec.Cancellation = &cp
	return nil
}

func (r *memSettlementRepo) CasRefundStatus(_ context.Context, orderID string, from, to domain.RefundStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[orderID]
	if !ok || rec.Cancellation == nil {
		return false, nil
	}
	if rec.Cancellation.RefundStatus != from {
		return false, nil
	}
	rec.Cancellation.RefundStatus = to
	return true, nil
}

func (r *memSettlementRepo) SetRefundResult(_ context.Context, orderID string, status domain.RefundStatus, gatewayRefundID, failureReason *string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[orderID]
	if !ok || rec.Cancellation == nil {
		return errors.New("no cancellation to finalize")
	}
	rec.Cancellation.RefundStatus = status
	rec.Cancellation.GatewayRefundID = gatewayRefundID
	rec.Cancellation.FailureReason = failureReason
	rec.Cancellation.ProcessedAt = &at
	rec.UpdatedAt = at
	return nil
}

// memOrderRepo is an in-memory OrderRepository.
type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *memOrderRepo) put(o *domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
}

func (r *memOrderRepo) GetByID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) ListUnactioned(_ context.Context, cutoff time.Time) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if (o.Status == domain.OrderPending || o.Status == domain.OrderConfirmed) && o.CreatedAt.Before(cutoff) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) CancelIfUnactioned(_ context.Context, orderID string, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return false, nil
	}
	if o.Status != domain.OrderPending && o.Status != domain.OrderConfirmed {
		return false, nil
	}
	o.Status = domain.OrderCancelled
	o.CancellationReason = &reason
	return true, nil
}

// memOutboxRepo is an in-memory OutboxRepository.
type memOutboxRepo struct {
	mu   sync.Mutex
	msgs map[uuid.UUID]*domain.OutboxMessage
}

func newMemOutboxRepo() *memOutboxRepo {
	return &memOutboxRepo{msgs: make(map[uuid.UUID]*domain.OutboxMessage)}
}

func (r *memOutboxRepo) Enqueue(_ context.Context, msg *domain.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *msg
	r.msgs[msg.ID] = &cp
	return nil
}

func (r *memOutboxRepo) DuePending(_ context.Context, now time.Time, limit int) ([]domain.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.OutboxMessage
	for _, m := range r.msgs {
		if m.Status != domain.OutboxPending && m.Status != domain.OutboxFailed {
			continue
		}
		if m.NextAttemptAt.After(now) {
			continue
		}
		out = append(out, *m)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *memOutboxRepo) MarkSent(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.msgs[id]
	if !ok {
		return errors.New("outbox message not found")
	}
	m.Status = domain.OutboxSent
	m.SentAt = &at
	return nil
}

func (r *memOutboxRepo) MarkFailed(_ context.Context, id uuid.UUID, attempts int, nextAttempt time.Time, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.msgs[id]
	if !ok {
		return errors.New("outbox message not found")
	}
	m.Status = domain.OutboxFailed
	m.Attempts = attempts
	m.NextAttemptAt = nextAttempt
	m.LastError = &lastError
	return nil
}

// memAuditRepo records entries for assertions; safe for the async writer.
type memAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *memAuditRepo) Create(_ context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// noopAudit discards audit entries synchronously, keeping tests deterministic.
type noopAudit struct{}

func (noopAudit) Record(context.Context, *domain.AuditEntry) {}

// memCommissionRepo is an in-memory CommissionRepository.
type memCommissionRepo struct {
	mu      sync.Mutex
	configs map[string]*domain.CommissionConfig
	getErr  error
}

func newMemCommissionRepo() *memCommissionRepo {
	return &memCommissionRepo{configs: make(map[string]*domain.CommissionConfig)}
}

func (r *memCommissionRepo) GetByRestaurantID(_ context.Context, restaurantID string) (*domain.CommissionConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	cfg, ok := r.configs[restaurantID]
	if !ok {
		return nil, nil
	}
	cp := *cfg
	return &cp, nil
}

func (r *memCommissionRepo) Save(_ context.Context, cfg *domain.CommissionConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *cfg
	r.configs[cfg.RestaurantID] = &cp
	return nil
}

// memIdemCache is an in-memory IdempotencyCache; TTLs are ignored.
type memIdemCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemIdemCache() *memIdemCache {
	return &memIdemCache{data: make(map[string][]byte)}
}

func (c *memIdemCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (c *memIdemCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

// stubGateway lets tests script the external refund call.
type stubGateway struct {
	mu      sync.Mutex
	calls   int
	refund  *ports.GatewayRefund
	err     error
	lastID  string
	lastAmt int64
}

func (g *stubGateway) CreateRefund(_ context.Context, paymentID string, amount int64, _ map[string]string) (*ports.GatewayRefund, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastID = paymentID
	g.lastAmt = amount
	if g.err != nil {
		return nil, g.err
	}
	if g.refund != nil {
		return g.refund, nil
	}
	return &ports.GatewayRefund{ID: "rfnd_stub", Status: "processed"}, nil
}

// stubNotifier lets tests script restaurant notification delivery.
type stubNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (n *stubNotifier) NotifyRestaurantOrderUpdate(context.Context, string, string, string, string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return n.err
}

func (n *stubNotifier) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}
