package models

import "time"

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        int64  `gorm:"primaryKey"       json:"id"`
	UserID    int64  `gorm:"index;not null"   json:"user_id"`
	JTI       string `gorm:"uniqueIndex"      json:"jti"`
	ExpiresAt int64  `gorm:"not null"         json:"expires_at"`
	Revoked   bool   `gorm:"default:false"    json:"revoked"`
}

// LoginAttempt feeds the temporary lockout after repeated failures.
type LoginAttempt struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"index"      json:"username"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

type Client struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	// UserID links a customer account to its client record.
	UserID *int64 `gorm:"index" json:"-"`
}

type Product struct {
	ID        int64   `gorm:"primaryKey"      json:"id"`
	Reference string  `gorm:"unique;not null" json:"reference"`
	Label     string  `json:"label"`
	UnitPrice float64 `json:"unitPrice"`
	Stock     int     `json:"stock"`
}

const (
	StatusPending   = "PENDING"
	StatusValidated = "VALIDATED"
	StatusRejected  = "REJECTED"
)

type Invoice struct {
	ID          int64         `gorm:"primaryKey"      json:"id"`
	Reference   string        `gorm:"unique;not null" json:"reference"`
	Date        time.Time     `gorm:"not null"        json:"date"`
	Status      string        `gorm:"not null"        json:"status"`
	ClientID    int64         `gorm:"index;not null"  json:"customerId"`
	Client      *Client       `json:"customer,omitempty"`
	SellerID    *int64        `gorm:"index"           json:"-"`
	Seller      *User         `json:"-"`
	TotalAmount float64       `json:"totalAmount"`
	Lines       []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines"`
}

type InvoiceLine struct {
	ID        int64    `gorm:"primaryKey"     json:"-"`
	InvoiceID int64    `gorm:"index;not null" json:"-"`
	ProductID int64    `gorm:"not null"       json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `gorm:"check:quantity>0" json:"quantity"`
	// UnitPrice is snapshotted from the product when the invoice is
	// created, so later price edits leave past invoices alone.
	UnitPrice float64 `json:"unitPrice"`
}
