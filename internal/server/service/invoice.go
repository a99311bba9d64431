package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/logging"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/events"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/models"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/transport"
)

// Actor is the authenticated caller as the middleware resolved it.
type Actor struct {
	UserID   int64
	Username string
	Role     roles.Role
}

type InvoiceService struct {
	DB     *gorm.DB
	Events *events.Producer
}

// Create opens a PENDING invoice. Stock is only checked here, not
// reserved; the decrement happens when a seller validates.
func (s *InvoiceService) Create(ctx context.Context, req transport.CreateOrderRequest, actor Actor) (*models.Invoice, error) {
	l := logging.FromContext(ctx).With("svc", "invoice.create", "actor", actor.Username)

	if req.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customerId required", ErrValidation)
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: lines required", ErrValidation)
	}

	var client models.Client
	if err := s.DB.First(&client, req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client %d", ErrNotFound, req.CustomerID)
		}
		return nil, err
	}
	if actor.Role == roles.Customer && (client.UserID == nil || *client.UserID != actor.UserID) {
		l.Warn("create_forbidden", "customer_id", req.CustomerID)
		return nil, fmt.Errorf("%w: customers may only order for themselves", ErrForbidden)
	}

	invoice := models.Invoice{
		Reference: uuid.NewString(),
		Date:      time.Now().UTC(),
		Status:    models.StatusPending,
		ClientID:  client.ID,
	}

	var total float64
	for _, line := range req.Lines {
		if line.ProductID == 0 {
			return nil, fmt.Errorf("%w: line without productId", ErrValidation)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}

		var product models.Product
		if err := s.DB.First(&product, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
			}
			return nil, err
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %s", ErrConflict, product.Reference)
		}

		invoice.Lines = append(invoice.Lines, models.InvoiceLine{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.UnitPrice,
		})
		total += float64(line.Quantity) * product.UnitPrice
	}
	invoice.TotalAmount = total

	if err := s.DB.Create(&invoice).Error; err != nil {
		return nil, err
	}

	s.Events.Publish(ctx, events.TopicOrders, invoice.Reference, map[string]any{
		"type": "order_created", "order_id": invoice.ID, "customer_id": invoice.ClientID, "total": total,
	})
	l.Info("create_success", "order_id", invoice.ID, "total", total)
	return s.load(invoice.ID)
}

// List returns every invoice for admins and sellers; customers get
// only invoices on their own client record.
func (s *InvoiceService) List(ctx context.Context, actor Actor) ([]models.Invoice, error) {
	q := s.DB.Preload("Client").Preload("Seller").Preload("Lines").Preload("Lines.Product")
	if actor.Role == roles.Customer {
		q = q.Joins("JOIN clients ON clients.id = invoices.client_id").
			Where("clients.user_id = ?", actor.UserID)
	}
	var invoices []models.Invoice
	if err := q.Order("date DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *InvoiceService) Get(ctx context.Context, id int64, actor Actor) (*models.Invoice, error) {
	inv, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if actor.Role == roles.Customer {
		if inv.Client == nil || inv.Client.UserID == nil || *inv.Client.UserID != actor.UserID {
			return nil, fmt.Errorf("%w: not your invoice", ErrForbidden)
		}
	}
	return inv, nil
}

// UpdateStatus moves a PENDING invoice to VALIDATED or REJECTED.
// Terminal invoices answer 409. Validation decrements stock, so a sale
// that outran the stock since creation is also a 409.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id int64, status string, actor Actor) (*models.Invoice, error) {
	l := logging.FromContext(ctx).With("svc", "invoice.update_status", "order_id", id, "actor", actor.Username)

	if status != models.StatusValidated && status != models.StatusRejected {
		return nil, fmt.Errorf("%w: status must be %s or %s", ErrValidation, models.StatusValidated, models.StatusRejected)
	}
	if actor.Role != roles.Admin && actor.Role != roles.Seller {
		return nil, fmt.Errorf("%w: role %s may not change invoice status", ErrForbidden, actor.Role)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Preload("Lines").First(&invoice, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %d", ErrNotFound, id)
			}
			return err
		}
		if invoice.Status != models.StatusPending {
			return fmt.Errorf("%w: invoice is already %s", ErrConflict, invoice.Status)
		}

		if status == models.StatusValidated {
			for _, line := range invoice.Lines {
				var product models.Product
				if err := tx.First(&product, line.ProductID).Error; err != nil {
					return err
				}
				if product.Stock < line.Quantity {
					return fmt.Errorf("%w: insufficient stock for %s", ErrConflict, product.Reference)
				}
				if err := tx.Model(&product).
					Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&invoice).Updates(map[string]any{
			"status":    status,
			"seller_id": actor.UserID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.Events.Publish(ctx, events.TopicOrders, fmt.Sprint(id), map[string]any{
		"type": "order_status_changed", "order_id": id, "status": status, "by": actor.Username,
	})
	l.Info("update_status_success", "status", status)
	return s.load(id)
}

func (s *InvoiceService) load(id int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Preload("Client").Preload("Seller").
		Preload("Lines").Preload("Lines.Product").
		First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invoice %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
