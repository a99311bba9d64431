package order

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/api"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/portal/model"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
)

// ErrTransition marks a status change the workflow refuses locally:
// the order is already terminal, or the acting role may not transition
// orders at all.
var ErrTransition = errors.New("transition")

type API interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error)
	OrderDocument(ctx context.Context, id int64) ([]byte, error)
}

type SessionInfo interface {
	IsLoggedIn() bool
	Role() roles.Role
	CustomerID() (int64, bool)
}

// Workflow drives order creation and the PENDING→VALIDATED/REJECTED
// lifecycle. It does not own order records, only the requests against
// them and the local reconciliation of results.
type Workflow struct {
	api    API
	sess   SessionInfo
	orders []model.Order
}

func New(a API, sess SessionInfo) *Workflow {
	return &Workflow{api: a, sess: sess}
}

// Create submits a PENDING order. Client-detectable problems are
// rejected before any network call. Clearing the cart after a
// successful checkout is the caller's job.
func (w *Workflow) Create(ctx context.Context, customerID int64, lines []model.OrderLineInput) (model.Order, error) {
	if customerID == 0 {
		return model.Order{}, fmt.Errorf("%w: customer is required", api.ErrValidation)
	}
	if len(lines) == 0 {
		return model.Order{}, fmt.Errorf("%w: order needs at least one line", api.ErrValidation)
	}
	for _, l := range lines {
		if l.ProductID == 0 {
			return model.Order{}, fmt.Errorf("%w: line without product", api.ErrValidation)
		}
		if l.Quantity <= 0 {
			return model.Order{}, fmt.Errorf("%w: quantity must be positive", api.ErrValidation)
		}
	}

	created, err := w.api.CreateOrder(ctx, model.CreateOrderRequest{CustomerID: customerID, Lines: lines})
	if err != nil {
		return model.Order{}, err
	}
	w.orders = append(w.orders, created)
	return created, nil
}

// Refresh reloads the orders visible to the caller. Customers see only
// their own orders; the server enforces that too, the client filter is
// a display convenience. Sellers get PENDING orders first, then the
// rest by descending date; everyone else gets descending date only.
func (w *Workflow) Refresh(ctx context.Context) error {
	all, err := w.api.ListOrders(ctx)
	if err != nil {
		return err
	}

	if w.sess.Role() == roles.Customer {
		id, ok := w.sess.CustomerID()
		if !ok {
			return fmt.Errorf("%w: customer session without customer id", api.ErrValidation)
		}
		filtered := all[:0]
		for _, o := range all {
			if o.CustomerID == id {
				filtered = append(filtered, o)
			}
		}
		all = filtered
	}

	pendingFirst := w.sess.Role() == roles.Seller
	sort.SliceStable(all, func(i, j int) bool {
		if pendingFirst {
			pi, pj := all[i].Status == model.StatusPending, all[j].Status == model.StatusPending
			if pi != pj {
				return pi
			}
		}
		return all[i].Date.After(all[j].Date)
	})

	w.orders = all
	return nil
}

func (w *Workflow) Orders() []model.Order {
	return slices.Clone(w.orders)
}

func (w *Workflow) PendingCount() int {
	n := 0
	for _, o := range w.orders {
		if o.Status == model.StatusPending {
			n++
		}
	}
	return n
}

func (w *Workflow) ValidatedCount() int {
	n := 0
	for _, o := range w.orders {
		if o.Status == model.StatusValidated {
			n++
		}
	}
	return n
}

// UpdateStatus transitions a PENDING order to VALIDATED or REJECTED.
// Terminal orders are refused locally, without touching the server or
// local state. On success the local entry takes the server-returned
// order, never an optimistic guess.
func (w *Workflow) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	if r := w.sess.Role(); r != roles.Admin && r != roles.Seller {
		return model.Order{}, fmt.Errorf("%w: role %q may not change order status", ErrTransition, r)
	}
	if status != model.StatusValidated && status != model.StatusRejected {
		return model.Order{}, fmt.Errorf("%w: %s is not a valid target status", api.ErrValidation, status)
	}

	idx := slices.IndexFunc(w.orders, func(o model.Order) bool { return o.ID == id })
	if idx < 0 {
		return model.Order{}, fmt.Errorf("%w: order %d", api.ErrNotFound, id)
	}
	if w.orders[idx].Status.Terminal() {
		return model.Order{}, fmt.Errorf("%w: order %d is already %s", ErrTransition, id, w.orders[idx].Status)
	}

	updated, err := w.api.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return model.Order{}, err
	}
	w.orders[idx] = updated
	return updated, nil
}

// Document fetches the order's rendered document as opaque bytes.
func (w *Workflow) Document(ctx context.Context, id int64) ([]byte, error) {
	return w.api.OrderDocument(ctx, id)
}
