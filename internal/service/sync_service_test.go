package service_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/service"
	"github.com/VerdeSupply/storefront_api/pkg/zoho"
)

type fakeOrderStore struct {
	order      *models.Order
	invoiceIDs []string
	poIDs      []string
}

func (f *fakeOrderStore) GetByID(id int) (*models.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.order, nil
}

func (f *fakeOrderStore) SetZohoInvoiceID(id int, invoiceID string) error {
	f.invoiceIDs = append(f.invoiceIDs, invoiceID)
	return nil
}

func (f *fakeOrderStore) SetZohoPurchaseOrderID(id int, poID string) error {
	f.poIDs = append(f.poIDs, poID)
	return nil
}

type fakeCustomerStore struct {
	customer *models.Customer
}

func (f *fakeCustomerStore) GetByID(id int) (*models.Customer, error) {
	if f.customer == nil || f.customer.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.customer, nil
}

func (f *fakeCustomerStore) SetZohoContactID(id int, zohoContactID string) error {
	contactID := zohoContactID
	f.customer.ZohoContactID = &contactID
	return nil
}

func (f *fakeCustomerStore) UpdateProfile(id int, name, phone string, language models.Language) error {
	return nil
}

type fakeProductStore struct{}

func (fakeProductStore) GetByID(id int) (*models.Product, error) { return nil, sql.ErrNoRows }

func (fakeProductStore) GetByZohoItemID(id string) (*models.Product, error) {
	return nil, sql.ErrNoRows
}

func (fakeProductStore) SetZohoItemID(id int, zohoItemID string) error { return nil }

func (fakeProductStore) Update(p *models.Product) error { return nil }

// zohoBooksStub serves the OAuth token endpoint plus the two Books document
// endpoints, counting how many documents get created.
type zohoBooksStub struct {
	invoicePosts atomic.Int32
	poPosts      atomic.Int32
}

func (z *zohoBooksStub) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/oauth/v2/token":
			_, _ = w.Write([]byte(`{"access_token":"test-token","expires_in":3600}`))
		case "/books/v3/invoices":
			z.invoicePosts.Add(1)
			_, _ = w.Write([]byte(`{"invoice":{"invoice_id":"inv-100"}}`))
		case "/books/v3/purchaseorders":
			z.poPosts.Add(1)
			_, _ = w.Write([]byte(`{"purchaseorder":{"purchaseorder_id":"po-100"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSyncFixture(t *testing.T, order *models.Order) (*service.SyncService, *fakeOrderStore, *zohoBooksStub) {
	t.Helper()
	stub := &zohoBooksStub{}
	srv := stub.server(t)

	client := zoho.NewClient(zoho.Config{
		ClientID:       "id",
		ClientSecret:   "secret",
		RefreshToken:   "refresh",
		OrganizationID: "org-1",
		AccountsURL:    srv.URL + "/oauth/v2/token",
		CRMBaseURL:     srv.URL + "/crm/v2",
		BooksBaseURL:   srv.URL + "/books/v3",
	})

	contactID := "contact-1"
	orders := &fakeOrderStore{order: order}
	customers := &fakeCustomerStore{customer: &models.Customer{
		ID:            7,
		Email:         "pat@example.com",
		Name:          "Pat",
		ZohoContactID: &contactID,
	}}
	svc := service.NewSyncService(client, orders, customers, fakeProductStore{}, nil)
	return svc, orders, stub
}

func paidConfirmedOrder() *models.Order {
	return &models.Order{
		ID:            42,
		OrderNumber:   "ord-42",
		UserID:        7,
		Status:        models.OrderConfirmed,
		PaymentStatus: models.PaymentPaid,
		Items: []models.OrderItem{
			{ProductName: "Pea Gravel", Quantity: 3, UnitPriceCents: 4500},
		},
	}
}

func TestProcessOrderDocumentsSkipsExistingDocuments(t *testing.T) {
	t.Parallel()

	order := paidConfirmedOrder()
	invoiceID, poID := "inv-existing", "po-existing"
	order.ZohoInvoiceID = &invoiceID
	order.ZohoPurchaseOrderID = &poID

	svc, orders, stub := newSyncFixture(t, order)

	// Reprocessing an order that already carries both document ids must
	// create nothing, no matter how many times it runs.
	for i := 0; i < 3; i++ {
		result := svc.ProcessOrderDocuments(context.Background(), order.ID)
		require.True(t, result.Success)
		assert.Zero(t, result.DocumentsCreated)
	}
	assert.Zero(t, stub.invoicePosts.Load())
	assert.Zero(t, stub.poPosts.Load())
	assert.Empty(t, orders.invoiceIDs)
	assert.Empty(t, orders.poIDs)
}

func TestProcessOrderDocumentsCreatesMissingInvoiceOnly(t *testing.T) {
	t.Parallel()

	order := paidConfirmedOrder()
	poID := "po-existing"
	order.ZohoPurchaseOrderID = &poID

	svc, orders, stub := newSyncFixture(t, order)

	result := svc.ProcessOrderDocuments(context.Background(), order.ID)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.DocumentsCreated)
	assert.Equal(t, int32(1), stub.invoicePosts.Load())
	assert.Zero(t, stub.poPosts.Load())
	assert.Equal(t, []string{"inv-100"}, orders.invoiceIDs)

	// The recorded id makes the second pass a no-op.
	result = svc.ProcessOrderDocuments(context.Background(), order.ID)
	require.True(t, result.Success)
	assert.Zero(t, result.DocumentsCreated)
	assert.Equal(t, int32(1), stub.invoicePosts.Load())
}

func TestProcessOrderDocumentsCreatesBoth(t *testing.T) {
	t.Parallel()

	svc, orders, stub := newSyncFixture(t, paidConfirmedOrder())

	result := svc.ProcessOrderDocuments(context.Background(), 42)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.DocumentsCreated)
	assert.Equal(t, int32(1), stub.invoicePosts.Load())
	assert.Equal(t, int32(1), stub.poPosts.Load())
	assert.Equal(t, []string{"inv-100"}, orders.invoiceIDs)
	assert.Equal(t, []string{"po-100"}, orders.poIDs)
}

func TestProcessOrderDocumentsPendingUnpaid(t *testing.T) {
	t.Parallel()

	order := paidConfirmedOrder()
	order.Status = models.OrderPending
	order.PaymentStatus = models.PaymentPending

	svc, _, stub := newSyncFixture(t, order)

	result := svc.ProcessOrderDocuments(context.Background(), order.ID)
	require.True(t, result.Success)
	assert.Zero(t, result.DocumentsCreated)
	assert.Zero(t, stub.invoicePosts.Load())
	assert.Zero(t, stub.poPosts.Load())
}
