package api

import (
	"context"
	"encoding/json"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/pkg/http"
)

// OrdersAPI wraps the /orders endpoints.
type OrdersAPI struct {
	c *Client
}

// OrderInput is the submission payload built from a cart.
type OrderInput struct {
	TableNumber string             `json:"tableNumber"`
	Items       []models.OrderItem `json:"items"`
	Subtotal    float64            `json:"subtotal"`
	Total       float64            `json:"total"`
	Notes       string             `json:"notes,omitempty"`
}

// List fetches orders, optionally filtered by query params. Some backends
// answer with a bare array, others wrap it as {"orders": [...]}; both decode.
func (a OrdersAPI) List(ctx context.Context, params map[string]string) ([]models.Order, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.Get(a.c.url("/orders")).QueryMap(params), &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var out []models.Order
	if err := json.Unmarshal(raw, &out); err == nil {
		return out, nil
	}

	var wrapped struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, &Error{Kind: KindServer, Message: "unexpected response from server", cause: err}
	}
	return wrapped.Orders, nil
}

// Get fetches one order.
func (a OrdersAPI) Get(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := a.c.do(ctx, http.Get(a.c.url("/orders/"+id)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create submits a new order.
func (a OrdersAPI) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	var out models.Order
	if err := a.c.do(ctx, http.Post(a.c.url("/orders")).Body(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus moves an order to a new status.
func (a OrdersAPI) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	body := map[string]string{"status": string(status)}
	return a.c.do(ctx, http.Patch(a.c.url("/orders/"+id)).Body(body), nil)
}

// Cancel cancels an order.
func (a OrdersAPI) Cancel(ctx context.Context, id string) error {
	return a.c.do(ctx, http.Patch(a.c.url("/orders/"+id+"/cancel")), nil)
}
