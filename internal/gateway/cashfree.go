package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tasktakr/pkg/utils"

	"go.uber.org/zap"
)

// Client creates payment orders with the external payment gateway.
type Client interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)
}

type CreateOrderRequest struct {
	OrderID       string  `json:"order_id"`
	OrderAmount   float64 `json:"order_amount"`
	OrderCurrency string  `json:"order_currency"`
	CustomerID    string  `json:"customer_id"`
	CustomerPhone string  `json:"customer_phone"`
}

type CreateOrderResponse struct {
	OrderID        string `json:"order_id"`
	PaymentSession string `json:"payment_session_id"`
	OrderStatus    string `json:"order_status"`
}

type cashfreeClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	log          *zap.Logger
}

func NewCashfreeClient(cfg utils.GatewayConfig, log *zap.Logger) Client {
	return &cashfreeClient{
		baseURL:      cfg.BaseURL,
		clientID:     cfg.APIKey,
		clientSecret: cfg.APISecret,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		log:          log.With(zap.String("gateway", "cashfree")),
	}
}

type gatewayOrderPayload struct {
	OrderID         string               `json:"order_id"`
	OrderAmount     float64              `json:"order_amount"`
	OrderCurrency   string               `json:"order_currency"`
	CustomerDetails gatewayCustomerBlock `json:"customer_details"`
}

type gatewayCustomerBlock struct {
	CustomerID    string `json:"customer_id"`
	CustomerPhone string `json:"customer_phone"`
}

func (c *cashfreeClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	payload := gatewayOrderPayload{
		OrderID:       req.OrderID,
		OrderAmount:   req.OrderAmount,
		OrderCurrency: req.OrderCurrency,
		CustomerDetails: gatewayCustomerBlock{
			CustomerID:    req.CustomerID,
			CustomerPhone: req.CustomerPhone,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal gateway order payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gateway order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-version", "2023-08-01")
	httpReq.Header.Set("x-client-id", c.clientID)
	httpReq.Header.Set("x-client-secret", c.clientSecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("Gateway order request failed",
			zap.Error(err),
			zap.String("order_id", req.OrderID),
		)
		return nil, fmt.Errorf("gateway order request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("Gateway rejected order",
			zap.Int("status_code", resp.StatusCode),
			zap.String("order_id", req.OrderID),
			zap.ByteString("body", respBody),
		)
		return nil, fmt.Errorf("gateway rejected order %s with status %d", req.OrderID, resp.StatusCode)
	}

	var orderResp CreateOrderResponse
	if err := json.Unmarshal(respBody, &orderResp); err != nil {
		return nil, fmt.Errorf("decode gateway order response: %w", err)
	}

	return &orderResp, nil
}
