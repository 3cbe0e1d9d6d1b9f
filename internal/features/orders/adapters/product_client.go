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
	"order-service/internal/features/orders/ports"

	"github.com/shopspring/decimal"
)

// HTTPProductClient implements the ProductClient port against the product
// service's REST API. It translates between wire shapes and domain values
// so remote representation changes stay contained here.
type HTTPProductClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPProductClient creates a new HTTPProductClient.
func NewHTTPProductClient(baseURL string, timeout time.Duration) *HTTPProductClient {
	return &HTTPProductClient{
		client:  httpclient.NewClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type productBatchRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

type productResponse struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	Available     bool   `json:"available"`
}

type productBatchResponse struct {
	Products []productResponse `json:"products"`
}

type stockBatchRequest struct {
	Items []stockBatchItem `json:"items"`
}

type stockBatchItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type stockBatchResponse struct {
	Success bool `json:"success"`
}

// GetProducts batch-fetches product details. Ids unknown to the product
// service are simply absent from the result map.
func (c *HTTPProductClient) GetProducts(ctx context.Context, productIDs []domain.ProductID) (map[domain.ProductID]ports.ProductInfo, error) {
	ids := make([]int64, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.Value())
	}

	var batch productBatchResponse
	if err := c.post(ctx, "/products/batch", productBatchRequest{ProductIDs: ids}, &batch); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	products := make(map[domain.ProductID]ports.ProductInfo, len(batch.Products))
	for _, p := range batch.Products {
		productID, err := domain.NewProductID(p.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product service returned invalid product id %d: %w", p.ProductID, err)
		}

		amount, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product service returned invalid price %q for product %d: %w", p.Price, p.ProductID, err)
		}
		price, err := domain.NewMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("product service returned invalid price %q for product %d: %w", p.Price, p.ProductID, err)
		}

		products[productID] = ports.ProductInfo{
			ProductID:     productID,
			Name:          p.Name,
			Price:         price,
			StockQuantity: p.StockQuantity,
			Available:     p.Available,
		}
	}

	return products, nil
}

// DecreaseStocks asks the product service to atomically decrement stock
// for the whole batch. A false result means the service rejected it, e.g.
// because some product ran out between the availability check and now.
func (c *HTTPProductClient) DecreaseStocks(ctx context.Context, quantities map[domain.ProductID]int) (bool, error) {
	var result stockBatchResponse
	if err := c.post(ctx, "/products/batch/decrease-stock", toStockBatch(quantities), &result); err != nil {
		return false, fmt.Errorf("failed to decrease stocks: %w", err)
	}
	return result.Success, nil
}

// RestoreStocks returns previously decremented stock, used when an order
// is cancelled.
func (c *HTTPProductClient) RestoreStocks(ctx context.Context, quantities map[domain.ProductID]int) error {
	if err := c.post(ctx, "/products/batch/restore-stock", toStockBatch(quantities), nil); err != nil {
		return fmt.Errorf("failed to restore stocks: %w", err)
	}
	return nil
}

// HealthCheck verifies the product service is reachable. Called once at
// startup.
func (c *HTTPProductClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("product service returned status: %d", resp.StatusCode)
	}

	return nil
}

func (c *HTTPProductClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("product service returned status: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func toStockBatch(quantities map[domain.ProductID]int) stockBatchRequest {
	items := make([]stockBatchItem, 0, len(quantities))
	for id, qty := range quantities {
		items = append(items, stockBatchItem{ProductID: id.Value(), Quantity: qty})
	}
	return stockBatchRequest{Items: items}
}
