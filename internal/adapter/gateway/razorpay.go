package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"marketplace-settlement/config"
	"marketplace-settlement/internal/core/ports"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RazorpayGateway implements ports.RefundGateway against the Razorpay refund
// API. Credentials go over basic auth; amounts are in the smallest unit, which
// matches the ledger so no conversion happens here.
type RazorpayGateway struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewRazorpayGateway creates a Razorpay-backed refund gateway.
func NewRazorpayGateway(cfg config.GatewayConfig, httpClient HTTPClient, log zerolog.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		baseURL:    cfg.BaseURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		httpClient: httpClient,
		log:        log,
	}
}

type refundRequest struct {
	Amount int64             `json:"amount"`
	Speed  string            `json:"speed"`
	Notes  map[string]string `json:"notes,omitempty"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateRefund issues a refund against a captured payment.
func (g *RazorpayGateway) CreateRefund(ctx context.Context, paymentID string, amount int64, notes map[string]string) (*ports.GatewayRefund, error) {
	body, err := json.Marshal(refundRequest{
		Amount: amount,
		Speed:  "normal",
		Notes:  notes,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal refund request: %w", err)
	}

	url := fmt.Sprintf("%s/payments/%s/refund", g.baseURL, paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build refund request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call refund api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read refund response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gwErr := gatewayError{}
		if err := json.Unmarshal(raw, &gwErr); err == nil && gwErr.Error.Description != "" {
			return nil, fmt.Errorf("refund rejected (%d %s): %s", resp.StatusCode, gwErr.Error.Code, gwErr.Error.Description)
		}
		return nil, fmt.Errorf("refund rejected: status %d", resp.StatusCode)
	}

	result := refundResponse{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode refund response: %w", err)
	}

	g.log.Info().
		Str("payment_id", paymentID).
		Str("refund_id", result.ID).
		Int64("amount", amount).
		Msg("gateway refund created")

	return &ports.GatewayRefund{ID: result.ID, Status: result.Status}, nil
}
