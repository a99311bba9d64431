package model

import "time"

// OrderStatus lifecycle: PENDING is the only non-terminal state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusValidated OrderStatus = "VALIDATED"
	StatusRejected  OrderStatus = "REJECTED"
)

func (s OrderStatus) Terminal() bool {
	return s == StatusValidated || s == StatusRejected
}

type Product struct {
	ID        int64   `json:"id"`
	Reference string  `json:"reference"`
	Label     string  `json:"label"`
	UnitPrice float64 `json:"unitPrice"`
	Stock     int     `json:"stock"`
}

type Client struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type OrderLine struct {
	ProductID int64    `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
	// UnitPrice is the price snapshotted when the order was created.
	UnitPrice float64 `json:"unitPrice"`
}

type Order struct {
	ID          int64       `json:"id"`
	Reference   string      `json:"reference"`
	Date        time.Time   `json:"date"`
	Status      OrderStatus `json:"status"`
	CustomerID  int64       `json:"customerId"`
	Customer    *Client     `json:"customer,omitempty"`
	Seller      string      `json:"seller,omitempty"`
	Lines       []OrderLine `json:"lines"`
	TotalAmount float64     `json:"totalAmount"`
}

type OrderLineInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID int64            `json:"customerId"`
	Lines      []OrderLineInput `json:"lines"`
}

// LoginResponse accepts both credential shapes the server may answer
// with: the access/refresh pair or the single legacy token.
type LoginResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`

	Token string `json:"token,omitempty"`

	Username   string `json:"username"`
	Role       string `json:"role"`
	CustomerID *int64 `json:"customerId,omitempty"`
}
