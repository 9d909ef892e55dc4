package service

import (
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom/internal/inventory/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(store.NewFileStore(filepath.Join(t.TempDir(), "db.json")))
}

func strPtr(s string) *string { return &s }

func requireValidation(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, msg, ve.Error())
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name string
		in   CreateProductInput
		msg  string
	}{
		{"missing name", CreateProductInput{Price: 1.0}, "Field 'name' is required"},
		{"missing price", CreateProductInput{Name: "Pen"}, "Field 'price' is required"},
		{"non-numeric price string", CreateProductInput{Name: "Pen", Price: "cheap"}, "Field 'price' must be a number"},
		{"bool price", CreateProductInput{Name: "Pen", Price: true}, "Field 'price' must be a number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(tc.in)
			requireValidation(t, err, tc.msg)
		})
	}

	// nothing was persisted by the failed attempts
	products, err := svc.ListProducts()
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestCreateProductGeneratesPrefixedID(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.CreateProduct(CreateProductInput{Name: "Notebook", Price: 12.5})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^p-[0-9a-f]{8}$`), p.ID)
	assert.Equal(t, "Notebook", p.Name)
	assert.Equal(t, 12.5, p.Price)
	assert.NotEmpty(t, p.CreatedAt)
}

func TestCreateProductAcceptsNumericStringPrice(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.CreateProduct(CreateProductInput{Name: "Pen", Price: " 12.5 "})
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.Price)
}

func TestCreateProductCustomAndDuplicateID(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.CreateProduct(CreateProductInput{ID: "sku-1", Name: "Pen", Price: 1.0})
	require.NoError(t, err)
	assert.Equal(t, "sku-1", p.ID)

	_, err = svc.CreateProduct(CreateProductInput{ID: "sku-1", Name: "Other", Price: 2.0})
	requireValidation(t, err, "Product id already exists")

	products, err := svc.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 1, "duplicate create must leave the collection unchanged")
}

func TestGetProductRoundTrip(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateProduct(CreateProductInput{Name: "Notebook", Price: 12.5})
	require.NoError(t, err)

	got, err := svc.GetProduct(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.GetProduct("ghost")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProductPartial(t *testing.T) {
	svc := newTestService(t)
	created, err := svc.CreateProduct(CreateProductInput{Name: "Notebook", Price: 12.5})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(created.ID, UpdateProductInput{Price: 9.99})
	require.NoError(t, err)
	assert.Equal(t, "Notebook", updated.Name, "unsupplied fields stay unchanged")
	assert.Equal(t, 9.99, updated.Price)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	updated, err = svc.UpdateProduct(created.ID, UpdateProductInput{Name: strPtr("Planner")})
	require.NoError(t, err)
	assert.Equal(t, "Planner", updated.Name)
	assert.Equal(t, 9.99, updated.Price)

	_, err = svc.UpdateProduct(created.ID, UpdateProductInput{Price: "free"})
	requireValidation(t, err, "Field 'price' must be a number")

	_, err = svc.UpdateProduct(created.ID, UpdateProductInput{Name: strPtr("")})
	requireValidation(t, err, "Field 'name' must be a non-empty string")

	_, err = svc.UpdateProduct("ghost", UpdateProductInput{Price: 1.0})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductCascadesIntoOrders(t *testing.T) {
	svc := newTestService(t)

	keep, err := svc.CreateProduct(CreateProductInput{Name: "Pen", Price: 1.0})
	require.NoError(t, err)
	doomed, err := svc.CreateProduct(CreateProductInput{Name: "Notebook", Price: 12.5})
	require.NoError(t, err)

	order, err := svc.CreateOrder(CreateOrderInput{
		Customer: "Fatima",
		Items: []OrderItemInput{
			{ProductID: doomed.ID, Qty: 2},
			{ProductID: keep.ID, Qty: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	require.NoError(t, svc.DeleteProduct(doomed.ID))

	_, err = svc.GetProduct(doomed.ID)
	require.ErrorIs(t, err, ErrProductNotFound)

	got, err := svc.GetOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, keep.ID, got.Items[0].ProductID)
}

func TestDeleteProductCanEmptyAnOrder(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.CreateProduct(CreateProductInput{Name: "Notebook", Price: 12.5})
	require.NoError(t, err)
	order, err := svc.CreateOrder(CreateOrderInput{
		Customer: "Fatima",
		Items:    []OrderItemInput{{ProductID: p.ID, Qty: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(p.ID))

	got, err := svc.GetOrder(order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Items)
	require.Empty(t, got.Items, "orders may survive with zero items after the cascade")
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := newTestService(t)
	require.ErrorIs(t, svc.DeleteProduct("ghost"), ErrProductNotFound)
}

func TestConcurrentProductCreates(t *testing.T) {
	svc := newTestService(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateProduct(CreateProductInput{Name: "Pen", Price: 1.0})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	products, err := svc.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 2, "both concurrent creates must be visible")
	assert.NotEqual(t, products[0].ID, products[1].ID)
}
