package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// HTTPSource fetches the active set over the REST surface.
type HTTPSource struct {
	baseURL   string
	shopperID string
	client    *http.Client
}

// NewHTTPSource creates a source hitting the given dispatcher base URL for
// the given shopper.
func NewHTTPSource(baseURL, shopperID string) *HTTPSource {
	return &HTTPSource{
		baseURL:   baseURL,
		shopperID: shopperID,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

// ActiveOrders fetches the shopper's active orders.
func (s *HTTPSource) ActiveOrders(ctx context.Context) ([]wire.OrderSnapshot, error) {
	url := fmt.Sprintf("%s/api/v1/shoppers/%s/orders/active", s.baseURL, s.shopperID)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := s.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("active orders fetch returned status %d", response.StatusCode)
	}

	var snapshots []wire.OrderSnapshot
	if err := json.NewDecoder(response.Body).Decode(&snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
