package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"order-service/internal/core/httpclient"
	"order-service/internal/features/orders/domain"
)

// HTTPCustomerClient implements the CustomerClient port against the
// customer service's REST API.
type HTTPCustomerClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPCustomerClient creates a new HTTPCustomerClient.
func NewHTTPCustomerClient(baseURL string, timeout time.Duration) *HTTPCustomerClient {
	return &HTTPCustomerClient{
		client:  httpclient.NewClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type canOrderResponse struct {
	CanOrder bool `json:"can_order"`
}

// CanOrder reports whether the customer exists and is eligible to place
// orders. A 404 from the customer service means the customer is unknown
// and therefore not eligible.
func (c *HTTPCustomerClient) CanOrder(ctx context.Context, customerID domain.CustomerID) (bool, error) {
	url := fmt.Sprintf("%s/customers/%d/can-order", c.baseURL, customerID.Value())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("customer service returned status: %d", resp.StatusCode)
	}

	var result canOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.CanOrder, nil
}
