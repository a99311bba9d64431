package cart

import (
	"slices"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
)

type Line struct {
	Product  model.Product
	Quantity int
}

// Subscription is the handle returned by Subscribe. Cancel detaches
// the subscriber; it is safe to call twice.
type Subscription struct {
	id   int
	cart *Cart
}

func (s *Subscription) Cancel() {
	if s.cart == nil {
		return
	}
	s.cart.unsubscribe(s.id)
	s.cart = nil
}

type subscriber struct {
	id int
	fn func([]Line)
}

// Cart accumulates a customer's product selections before checkout.
// One line per product: adding an already-present product increments
// its quantity. Mutations notify subscribers synchronously, in
// subscription order, after the mutation has been applied.
type Cart struct {
	lines  []Line
	subs   []subscriber
	nextID int
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) Add(p model.Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			c.notify()
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
	c.notify()
}

func (c *Cart) Remove(productID int64) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = slices.Delete(c.lines, i, i+1)
			c.notify()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
	c.notify()
}

// Items returns a snapshot; mutating it does not touch the cart.
func (c *Cart) Items() []Line {
	return slices.Clone(c.lines)
}

func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += float64(l.Quantity) * l.Product.UnitPrice
	}
	return total
}

func (c *Cart) Subscribe(fn func([]Line)) *Subscription {
	c.nextID++
	c.subs = append(c.subs, subscriber{id: c.nextID, fn: fn})
	return &Subscription{id: c.nextID, cart: c}
}

func (c *Cart) unsubscribe(id int) {
	for i := range c.subs {
		if c.subs[i].id == id {
			c.subs = slices.Delete(c.subs, i, i+1)
			return
		}
	}
}

func (c *Cart) notify() {
	for _, s := range slices.Clone(c.subs) {
		s.fn(c.Items())
	}
}
