package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"marketplace-settlement/config"

	"github.com/rs/zerolog"
)

// RestaurantNotifier implements ports.Notifier by POSTing order updates to the
// restaurant-facing notification collaborator.
type RestaurantNotifier struct {
	baseURL    string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewRestaurantNotifier creates an HTTP-backed restaurant notifier.
func NewRestaurantNotifier(cfg config.NotifierConfig, httpClient HTTPClient, log zerolog.Logger) *RestaurantNotifier {
	return &RestaurantNotifier{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		log:        log,
	}
}

type orderUpdateNotification struct {
	OrderID      string `json:"order_id"`
	RestaurantID string `json:"restaurant_id"`
	NewStatus    string `json:"new_status"`
	Reason       string `json:"reason,omitempty"`
}

// NotifyRestaurantOrderUpdate delivers one order-update notification.
func (n *RestaurantNotifier) NotifyRestaurantOrderUpdate(ctx context.Context, orderID, restaurantID, newStatus, reason string) error {
	body, err := json.Marshal(orderUpdateNotification{
		OrderID:      orderID,
		RestaurantID: restaurantID,
		NewStatus:    newStatus,
		Reason:       reason,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	url := fmt.Sprintf("%s/restaurants/%s/notifications", n.baseURL, restaurantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected: status %d", resp.StatusCode)
	}

	n.log.Debug().
		Str("order_id", orderID).
		Str("restaurant_id", restaurantID).
		Str("new_status", newStatus).
		Msg("restaurant notified")

	return nil
}
