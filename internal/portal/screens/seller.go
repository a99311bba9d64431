package screens

import (
	"context"
	"fmt"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/order"
)

// Confirm asks the user to approve a destructive action. Returning
// false aborts it before any call goes out.
type Confirm func(prompt string) bool

// SellerDashboard surfaces the order feed pending-first and lets the
// seller validate or reject pending orders.
type SellerDashboard struct {
	Orders  *order.Workflow
	Confirm Confirm
}

func (d *SellerDashboard) Load(ctx context.Context) error {
	return d.Orders.Refresh(ctx)
}

func (d *SellerDashboard) Feed() []model.Order { return d.Orders.Orders() }

func (d *SellerDashboard) PendingCount() int   { return d.Orders.PendingCount() }
func (d *SellerDashboard) ValidatedCount() int { return d.Orders.ValidatedCount() }

func (d *SellerDashboard) Validate(ctx context.Context, id int64) (model.Order, bool, error) {
	return d.transition(ctx, id, model.StatusValidated)
}

func (d *SellerDashboard) Reject(ctx context.Context, id int64) (model.Order, bool, error) {
	return d.transition(ctx, id, model.StatusRejected)
}

// transition gates the status change behind an explicit confirmation.
// applied=false means the user declined and nothing was sent.
func (d *SellerDashboard) transition(ctx context.Context, id int64, status model.OrderStatus) (model.Order, bool, error) {
	if d.Confirm != nil {
		verb := "validate"
		if status == model.StatusRejected {
			verb = "reject"
		}
		if !d.Confirm(fmt.Sprintf("Do you want to %s order %d?", verb, id)) {
			return model.Order{}, false, nil
		}
	}
	updated, err := d.Orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.Order{}, false, err
	}
	return updated, true, nil
}
