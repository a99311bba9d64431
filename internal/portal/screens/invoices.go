package screens

import (
	"context"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/order"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/routing"
)

// InvoiceList is the shared order list screen. Its visible list is
// only updated when the user is still on the screen that asked for
// it: a fetch that completes after navigating away is dropped.
type InvoiceList struct {
	Orders *order.Workflow
	Nav    *routing.Navigator

	visible []model.Order
}

func (l *InvoiceList) Load(ctx context.Context) error {
	epoch := l.Nav.Epoch()
	if err := l.Orders.Refresh(ctx); err != nil {
		return err
	}
	if !l.Nav.StillAt(epoch) {
		// Navigated away while the fetch was in flight; abandon it.
		return nil
	}
	l.visible = l.Orders.Orders()
	return nil
}

func (l *InvoiceList) Invoices() []model.Order { return l.visible }

func (l *InvoiceList) Download(ctx context.Context, id int64) ([]byte, error) {
	return l.Orders.Document(ctx, id)
}
