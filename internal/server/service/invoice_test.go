package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/roles"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/models"
	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/transport"
)

func seedCatalog(t *testing.T, db *gorm.DB) (customer Actor, seller Actor, clientID int64) {
	t.Helper()

	users := []models.User{
		{Username: "amina", PasswordHash: "x", Role: "CUSTOMER"},
		{Username: "sofia", PasswordHash: "x", Role: "SELLER"},
	}
	require.NoError(t, db.Create(&users).Error)

	client := models.Client{FirstName: "Amina", LastName: "K", UserID: &users[0].ID}
	require.NoError(t, db.Create(&client).Error)

	products := []models.Product{
		{Reference: "DVD-001", Label: "Interstellar", UnitPrice: 9.5, Stock: 10},
		{Reference: "BK-042", Label: "Dune", UnitPrice: 5.0, Stock: 1},
	}
	require.NoError(t, db.Create(&products).Error)

	customer = Actor{UserID: users[0].ID, Username: "amina", Role: roles.Customer}
	seller = Actor{UserID: users[1].ID, Username: "sofia", Role: roles.Seller}
	return customer, seller, client.ID
}

func orderReq(clientID int64, lines ...transport.CreateOrderLine) transport.CreateOrderRequest {
	return transport.CreateOrderRequest{CustomerID: clientID, Lines: lines}
}

func TestCreateInvoiceSnapshotsPricesAndTotals(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, _, clientID := seedCatalog(t, db)

	inv, err := svc.Create(context.Background(), orderReq(clientID,
		transport.CreateOrderLine{ProductID: 1, Quantity: 2},
		transport.CreateOrderLine{ProductID: 2, Quantity: 1},
	), customer)
	require.NoError(t, err)

	require.Equal(t, models.StatusPending, inv.Status)
	require.NotEmpty(t, inv.Reference)
	require.InDelta(t, 24.0, inv.TotalAmount, 1e-9)
	require.Len(t, inv.Lines, 2)
	for _, line := range inv.Lines {
		if line.ProductID == 1 {
			require.Equal(t, 9.5, line.UnitPrice)
		}
	}

	// Stock is checked but not reserved at creation.
	var product models.Product
	require.NoError(t, db.First(&product, 1).Error)
	require.Equal(t, 10, product.Stock)
}

func TestCreateInvoiceValidations(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, _, clientID := seedCatalog(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, orderReq(0, transport.CreateOrderLine{ProductID: 1, Quantity: 1}), customer)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, orderReq(clientID), customer)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, orderReq(clientID, transport.CreateOrderLine{ProductID: 1, Quantity: 0}), customer)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, orderReq(999, transport.CreateOrderLine{ProductID: 1, Quantity: 1}), customer)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, orderReq(clientID, transport.CreateOrderLine{ProductID: 999, Quantity: 1}), customer)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvoiceInsufficientStock(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, _, clientID := seedCatalog(t, db)

	_, err := svc.Create(context.Background(),
		orderReq(clientID, transport.CreateOrderLine{ProductID: 2, Quantity: 5}), customer)
	require.ErrorIs(t, err, ErrConflict)
}

func TestCustomerCannotOrderForOthers(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, seller, _ := seedCatalog(t, db)

	other := models.Client{FirstName: "Other"}
	require.NoError(t, db.Create(&other).Error)

	_, err := svc.Create(context.Background(),
		orderReq(other.ID, transport.CreateOrderLine{ProductID: 1, Quantity: 1}), customer)
	require.ErrorIs(t, err, ErrForbidden)

	// Sellers may order on behalf of any client.
	_, err = svc.Create(context.Background(),
		orderReq(other.ID, transport.CreateOrderLine{ProductID: 1, Quantity: 1}), seller)
	require.NoError(t, err)
}

func TestValidateDecrementsStockAndRecordsSeller(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, seller, clientID := seedCatalog(t, db)
	ctx := context.Background()

	inv, err := svc.Create(ctx, orderReq(clientID, transport.CreateOrderLine{ProductID: 1, Quantity: 3}), customer)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, inv.ID, models.StatusValidated, seller)
	require.NoError(t, err)
	require.Equal(t, models.StatusValidated, updated.Status)
	require.NotNil(t, updated.SellerID)
	require.Equal(t, seller.UserID, *updated.SellerID)

	var product models.Product
	require.NoError(t, db.First(&product, 1).Error)
	require.Equal(t, 7, product.Stock)
}

func TestRejectLeavesStockAlone(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, seller, clientID := seedCatalog(t, db)
	ctx := context.Background()

	inv, err := svc.Create(ctx, orderReq(clientID, transport.CreateOrderLine{ProductID: 1, Quantity: 3}), customer)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, inv.ID, models.StatusRejected, seller)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, updated.Status)

	var product models.Product
	require.NoError(t, db.First(&product, 1).Error)
	require.Equal(t, 10, product.Stock)
}

func TestUpdateStatusTerminalInvoiceConflicts(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, seller, clientID := seedCatalog(t, db)
	ctx := context.Background()

	inv, err := svc.Create(ctx, orderReq(clientID, transport.CreateOrderLine{ProductID: 1, Quantity: 1}), customer)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, inv.ID, models.StatusValidated, seller)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, inv.ID, models.StatusRejected, seller)
	require.ErrorIs(t, err, ErrConflict)
}

func TestUpdateStatusGuards(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, seller, clientID := seedCatalog(t, db)
	ctx := context.Background()

	inv, err := svc.Create(ctx, orderReq(clientID, transport.CreateOrderLine{ProductID: 1, Quantity: 1}), customer)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, inv.ID, models.StatusPending, seller)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, inv.ID, models.StatusValidated, customer)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateStatus(ctx, 999, models.StatusValidated, seller)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestValidateOutrunByStockConflicts(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, seller, clientID := seedCatalog(t, db)
	ctx := context.Background()

	inv, err := svc.Create(ctx, orderReq(clientID, transport.CreateOrderLine{ProductID: 2, Quantity: 1}), customer)
	require.NoError(t, err)

	// Stock sold out between creation and validation.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", 2).Update("stock", 0).Error)

	_, err = svc.UpdateStatus(ctx, inv.ID, models.StatusValidated, seller)
	require.ErrorIs(t, err, ErrConflict)

	var reloaded models.Invoice
	require.NoError(t, db.First(&reloaded, inv.ID).Error)
	require.Equal(t, models.StatusPending, reloaded.Status)
}

func TestListScopesCustomersToOwnInvoices(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, seller, clientID := seedCatalog(t, db)
	ctx := context.Background()

	other := models.Client{FirstName: "Other"}
	require.NoError(t, db.Create(&other).Error)

	_, err := svc.Create(ctx, orderReq(clientID, transport.CreateOrderLine{ProductID: 1, Quantity: 1}), customer)
	require.NoError(t, err)
	_, err = svc.Create(ctx, orderReq(other.ID, transport.CreateOrderLine{ProductID: 1, Quantity: 1}), seller)
	require.NoError(t, err)

	mine, err := svc.List(ctx, customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, clientID, mine[0].ClientID)

	all, err := svc.List(ctx, seller)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestGetEnforcesOwnership(t *testing.T) {
	db := initTestDB(t)
	svc := &InvoiceService{DB: db}
	customer, seller, _ := seedCatalog(t, db)
	ctx := context.Background()

	other := models.Client{FirstName: "Other"}
	require.NoError(t, db.Create(&other).Error)

	inv, err := svc.Create(ctx, orderReq(other.ID, transport.CreateOrderLine{ProductID: 1, Quantity: 1}), seller)
	require.NoError(t, err)

	_, err = svc.Get(ctx, inv.ID, customer)
	require.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(ctx, inv.ID, seller)
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)
}
