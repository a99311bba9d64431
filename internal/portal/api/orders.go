package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
)

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error) {
	var out model.Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return model.Order{}, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	var out model.Order
	path := fmt.Sprintf("/orders/%d/status", id)
	body := struct {
		Status model.OrderStatus `json:"status"`
	}{Status: status}
	if err := c.doJSON(ctx, http.MethodPut, path, body, &out); err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// OrderDocument fetches the rendered document for an order as an
// opaque byte stream, ready to hand to the user as a download.
func (c *Client) OrderDocument(ctx context.Context, id int64) ([]byte, error) {
	return c.doBytes(ctx, fmt.Sprintf("/orders/%d/document", id))
}
