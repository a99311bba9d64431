package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
)

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveProduct(ctx context.Context, p model.Product) (model.Product, error) {
	var out model.Product
	method, path := http.MethodPost, "/products"
	if p.ID != 0 {
		method, path = http.MethodPut, fmt.Sprintf("/products/%d", p.ID)
	}
	if err := c.doJSON(ctx, method, path, p, &out); err != nil {
		return model.Product{}, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

func (c *Client) ListClients(ctx context.Context) ([]model.Client, error) {
	var out []model.Client
	if err := c.doJSON(ctx, http.MethodGet, "/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveClient(ctx context.Context, cl model.Client) (model.Client, error) {
	var out model.Client
	method, path := http.MethodPost, "/clients"
	if cl.ID != 0 {
		method, path = http.MethodPut, fmt.Sprintf("/clients/%d", cl.ID)
	}
	if err := c.doJSON(ctx, method, path, cl, &out); err != nil {
		return model.Client{}, err
	}
	return out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/clients/%d", id), nil, nil)
}
