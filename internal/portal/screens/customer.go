package screens

import (
	"context"
	"fmt"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/api"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/cart"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/order"
)

// CustomerSession is the slice of the session the customer dashboard
// needs.
type CustomerSession interface {
	CustomerID() (int64, bool)
}

// CustomerDashboard: browse products into the cart, then check the
// cart out as a PENDING order.
type CustomerDashboard struct {
	Session CustomerSession
	Cart    *cart.Cart
	Orders  *order.Workflow
}

func (d *CustomerDashboard) AddProduct(p model.Product) {
	d.Cart.Add(p)
}

func (d *CustomerDashboard) RemoveProduct(productID int64) {
	d.Cart.Remove(productID)
}

// Checkout turns the cart into an order. The cart is cleared only
// after the server acknowledged the creation; order creation itself
// never touches the cart.
func (d *CustomerDashboard) Checkout(ctx context.Context) (model.Order, error) {
	customerID, ok := d.Session.CustomerID()
	if !ok {
		return model.Order{}, fmt.Errorf("%w: no customer attached to this session", api.ErrValidation)
	}

	items := d.Cart.Items()
	lines := make([]model.OrderLineInput, 0, len(items))
	for _, it := range items {
		lines = append(lines, model.OrderLineInput{ProductID: it.Product.ID, Quantity: it.Quantity})
	}

	created, err := d.Orders.Create(ctx, customerID, lines)
	if err != nil {
		return model.Order{}, err
	}
	d.Cart.Clear()
	return created, nil
}
