package transport

import (
	"time"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/models"
)

type CreateOrderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID int64             `json:"customerId"`
	Lines      []CreateOrderLine `json:"lines"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderLineResponse struct {
	ProductID int64           `json:"productId"`
	Product   *models.Product `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice float64         `json:"unitPrice"`
}

type OrderResponse struct {
	ID          int64               `json:"id"`
	Reference   string              `json:"reference"`
	Date        time.Time           `json:"date"`
	Status      string              `json:"status"`
	CustomerID  int64               `json:"customerId"`
	Customer    *models.Client      `json:"customer,omitempty"`
	Seller      string              `json:"seller,omitempty"`
	Lines       []OrderLineResponse `json:"lines"`
	TotalAmount float64             `json:"totalAmount"`
}

func OrderFromModel(inv *models.Invoice) OrderResponse {
	resp := OrderResponse{
		ID:          inv.ID,
		Reference:   inv.Reference,
		Date:        inv.Date,
		Status:      inv.Status,
		CustomerID:  inv.ClientID,
		Customer:    inv.Client,
		TotalAmount: inv.TotalAmount,
		Lines:       make([]OrderLineResponse, 0, len(inv.Lines)),
	}
	if inv.Seller != nil {
		resp.Seller = inv.Seller.Username
	}
	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ProductID: l.ProductID,
			Product:   l.Product,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return resp
}

func OrdersFromModels(invs []models.Invoice) []OrderResponse {
	out := make([]OrderResponse, 0, len(invs))
	for i := range invs {
		out = append(out, OrderFromModel(&invs[i]))
	}
	return out
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries both the access/refresh pair and the legacy
// single-token field older clients still read.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
	Token        string `json:"token"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	CustomerID   *int64 `json:"customerId,omitempty"`
}
