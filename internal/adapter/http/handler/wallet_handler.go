package handler

import (
	"strconv"
	"time"

	"marketplace-settlement/internal/adapter/http/dto"
	"marketplace-settlement/internal/core/domain"
	"marketplace-settlement/internal/core/ports"
	"marketplace-settlement/pkg/apperror"
	"marketplace-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// WalletHandler handles wallet balance and ledger endpoints.
type WalletHandler struct {
	ledger ports.WalletLedger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledger ports.WalletLedger) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// actorKindFromParam maps the URL segment to a wallet actor kind.
func actorKindFromParam(kind string) (domain.ActorKind, bool) {
	switch domain.ActorKind(kind) {
	case domain.ActorUser, domain.ActorRestaurant, domain.ActorDelivery, domain.ActorAdmin:
		return domain.ActorKind(kind), true
	default:
		return "", false
	}
}

// GetBalance handles GET /api/v1/wallets/:kind/:actorID/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	kind, ok := actorKindFromParam(c.Param("kind"))
	if !ok {
		response.Error(c, apperror.Validation("unknown actor kind: "+c.Param("kind")))
		return
	}
	actorID := c.Param("actorID")

	balance, err := h.ledger.GetBalance(c.Request.Context(), actorID, kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WalletBalanceResponse{
		ActorID:   actorID,
		ActorKind: string(kind),
		Balance:   balance,
	})
}

// ListTransactions handles GET /api/v1/wallets/:kind/:actorID/transactions.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	kind, ok := actorKindFromParam(c.Param("kind"))
	if !ok {
		response.Error(c, apperror.Validation("unknown actor kind: "+c.Param("kind")))
		return
	}
	actorID := c.Param("actorID")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 || limit > maxPageSize {
		response.Error(c, apperror.Validation("limit must be in [1,"+strconv.Itoa(maxPageSize)+"]"))
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		response.Error(c, apperror.Validation("offset must be non-negative"))
		return
	}

	txns, err := h.ledger.ListTransactions(c.Request.Context(), actorID, kind, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.TransactionListResponse{Limit: limit, Offset: offset}
	for _, t := range txns {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(t))
	}
	response.OK(c, resp)
}

// toTransactionResponse converts a ledger entry for the boundary.
func toTransactionResponse(t domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:          t.ID.String(),
		Amount:      t.Amount,
		Type:        string(t.Type),
		Status:      string(t.Status),
		Description: t.Description,
		OrderID:     t.OrderID,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.ProcessedAt != nil {
		processed := t.ProcessedAt.UTC().Format(time.RFC3339)
		resp.ProcessedAt = &processed
	}
	return resp
}
