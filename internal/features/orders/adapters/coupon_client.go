package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"order-service/internal/core/httpclient"
	"order-service/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

// HTTPCouponClient implements the CouponClient port against the coupon
// service's REST API.
type HTTPCouponClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPCouponClient creates a new HTTPCouponClient.
func NewHTTPCouponClient(baseURL string, timeout time.Duration) *HTTPCouponClient {
	return &HTTPCouponClient{
		client:  httpclient.NewClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type calculateDiscountRequest struct {
	OrderAmount string `json:"order_amount"`
}

type calculateDiscountResponse struct {
	DiscountAmount string `json:"discount_amount"`
}

type useCouponRequest struct {
	CustomerID int64 `json:"customer_id"`
}

type couponActionResponse struct {
	Success bool `json:"success"`
}

// CalculateDiscount asks the coupon service what the coupon is worth for
// the given order amount. A 404 means the coupon is unknown, expired, or
// inapplicable; that is reported as a nil discount, not an error.
func (c *HTTPCouponClient) CalculateDiscount(ctx context.Context, couponCode domain.CouponCode, orderAmount domain.Money) (*domain.Money, error) {
	url := fmt.Sprintf("%s/coupons/%s/calculate", c.baseURL, couponCode.Value())

	payload, err := json.Marshal(calculateDiscountRequest{OrderAmount: orderAmount.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coupon service returned status: %d", resp.StatusCode)
	}

	var result calculateDiscountResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	amount, err := decimal.NewFromString(result.DiscountAmount)
	if err != nil {
		return nil, fmt.Errorf("coupon service returned invalid discount %q: %w", result.DiscountAmount, err)
	}
	discount, err := domain.NewMoney(amount)
	if err != nil {
		return nil, fmt.Errorf("coupon service returned invalid discount %q: %w", result.DiscountAmount, err)
	}

	return &discount, nil
}

// UseCoupon marks the coupon as consumed by the customer.
func (c *HTTPCouponClient) UseCoupon(ctx context.Context, couponCode domain.CouponCode, customerID domain.CustomerID) (bool, error) {
	url := fmt.Sprintf("%s/coupons/%s/use", c.baseURL, couponCode.Value())
	return c.postAction(ctx, url, useCouponRequest{CustomerID: customerID.Value()})
}

// RestoreCoupon returns a consumed coupon to circulation after an order
// cancellation.
func (c *HTTPCouponClient) RestoreCoupon(ctx context.Context, couponCode domain.CouponCode) (bool, error) {
	url := fmt.Sprintf("%s/coupons/%s/restore", c.baseURL, couponCode.Value())
	return c.postAction(ctx, url, struct{}{})
}

func (c *HTTPCouponClient) postAction(ctx context.Context, url string, body any) (bool, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return false, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("coupon service returned status: %d", resp.StatusCode)
	}

	var result couponActionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Success, nil
}
