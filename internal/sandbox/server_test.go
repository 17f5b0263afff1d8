package sandbox_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/internal/sandbox"
	"github.com/marespinozac/comanda/pkg/event"
)

// token holds the bearer for a test client; it flips after login.
type token struct{ value string }

func (t *token) Token() string { return t.value }

func startSandbox(t *testing.T) (*api.Client, *token) {
	t.Helper()

	srv, err := sandbox.New(sandbox.Options{
		DSN:  filepath.Join(t.TempDir(), "sandbox.db"),
		Seed: true,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	tok := &token{}
	return api.New(ts.URL+"/api", tok, event.NewBus()), tok
}

func login(t *testing.T, gw *api.Client, tok *token, username string) models.User {
	t.Helper()
	res, err := gw.Auth.Login(context.Background(), username, "secret")
	require.NoError(t, err)
	tok.value = res.Token
	return res.User
}

func TestLoginAndVerify(t *testing.T) {
	gw, tok := startSandbox(t)
	ctx := context.Background()

	user := login(t, gw, tok, "waiter")
	assert.Equal(t, models.RoleWaiter, user.Role)
	assert.NotEmpty(t, user.ID)

	require.NoError(t, gw.Auth.Verify(ctx))
}

func TestLoginRejectsBadPassword(t *testing.T) {
	gw, _ := startSandbox(t)

	_, err := gw.Auth.Login(context.Background(), "waiter", "nope")
	assert.True(t, api.IsUnauthorized(err))
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	gw, _ := startSandbox(t)

	_, err := gw.Categories.List(context.Background())
	assert.True(t, api.IsUnauthorized(err))
}

func TestRegister(t *testing.T) {
	gw, tok := startSandbox(t)
	ctx := context.Background()
	login(t, gw, tok, "admin")

	err := gw.Auth.Register(ctx, api.RegisterInput{
		Username: "newwaiter",
		Password: "hunter22",
		FullName: "Nina New",
		Role:     "WAITER",
	})
	require.NoError(t, err)

	// duplicate usernames and unknown roles are turned away
	err = gw.Auth.Register(ctx, api.RegisterInput{Username: "newwaiter", Password: "x", Role: "WAITER"})
	assert.Error(t, err)
	err = gw.Auth.Register(ctx, api.RegisterInput{Username: "other", Password: "x", Role: "OWNER"})
	assert.Error(t, err)
}

func TestSeededCatalog(t *testing.T) {
	gw, tok := startSandbox(t)
	ctx := context.Background()
	login(t, gw, tok, "waiter")

	categories, err := gw.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 4)

	products, err := gw.Products.List(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	// products come back with the category expanded
	var sawInactive bool
	for _, p := range products {
		if p.CategoryID != "" {
			require.NotNil(t, p.Category, "product %s", p.Name)
		}
		if !p.IsActive {
			sawInactive = true
		}
	}
	assert.True(t, sawInactive, "the seed includes an inactive product")

	active, err := gw.Products.List(ctx, map[string]string{"isActive": "true"})
	require.NoError(t, err)
	for _, p := range active {
		assert.True(t, p.IsActive)
	}
	assert.Less(t, len(active), len(products))
}

func TestProductLifecycle(t *testing.T) {
	gw, tok := startSandbox(t)
	ctx := context.Background()
	login(t, gw, tok, "admin")

	categories, err := gw.Categories.List(ctx)
	require.NoError(t, err)

	created, err := gw.Products.Create(ctx, api.ProductInput{
		Name:       "Test dish",
		Price:      9.90,
		CategoryID: categories[0].ID,
		Stock:      100,
		MinStock:   5,
		IsActive:   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := gw.Products.Update(ctx, created.ID, api.ProductInput{
		Name:       "Renamed dish",
		Price:      11.00,
		CategoryID: categories[0].ID,
		Stock:      100,
		MinStock:   5,
		IsActive:   false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed dish", updated.Name)
	assert.False(t, updated.IsActive)

	require.NoError(t, gw.Products.Delete(ctx, created.ID))

	_, err = gw.Products.Get(ctx, created.ID)
	require.Error(t, err)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestOrderLifecycle(t *testing.T) {
	gw, tok := startSandbox(t)
	ctx := context.Background()
	login(t, gw, tok, "waiter")

	products, err := gw.Products.List(ctx, map[string]string{"isActive": "true"})
	require.NoError(t, err)
	require.NotEmpty(t, products)

	created, err := gw.Orders.Create(ctx, api.OrderInput{
		TableNumber: "7",
		Items: []models.OrderItem{
			{ProductID: products[0].ID, Quantity: 2, Price: products[0].Price},
		},
		Subtotal: products[0].Price * 2,
		Total:    products[0].Price * 2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "7", created.TableNumber)
	require.Len(t, created.Items, 1)
	require.NotNil(t, created.Items[0].Product)

	require.NoError(t, gw.Orders.UpdateStatus(ctx, created.ID, models.StatusPreparing))
	require.NoError(t, gw.Orders.UpdateStatus(ctx, created.ID, models.StatusReady))

	got, err := gw.Orders.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, got.Status)

	require.NoError(t, gw.Orders.Cancel(ctx, created.ID))

	// a closed order refuses further transitions
	err = gw.Orders.UpdateStatus(ctx, created.ID, models.StatusPreparing)
	require.Error(t, err)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.KindRequest, apiErr.Kind)
}

func TestOrderCreateValidation(t *testing.T) {
	gw, tok := startSandbox(t)
	ctx := context.Background()
	login(t, gw, tok, "waiter")

	_, err := gw.Orders.Create(ctx, api.OrderInput{TableNumber: "3"})
	require.Error(t, err)

	_, err = gw.Orders.Create(ctx, api.OrderInput{
		Items: []models.OrderItem{{ProductID: "p", Quantity: 1, Price: 1}},
	})
	require.Error(t, err)
}

func TestOrderStatusFilter(t *testing.T) {
	gw, tok := startSandbox(t)
	ctx := context.Background()
	login(t, gw, tok, "cook")

	products, err := gw.Products.List(ctx, nil)
	require.NoError(t, err)

	for _, table := range []string{"1", "2"} {
		_, err := gw.Orders.Create(ctx, api.OrderInput{
			TableNumber: table,
			Items:       []models.OrderItem{{ProductID: products[0].ID, Quantity: 1, Price: products[0].Price}},
			Subtotal:    products[0].Price,
			Total:       products[0].Price,
		})
		require.NoError(t, err)
	}

	pending, err := gw.Orders.List(ctx, map[string]string{"status": "PENDING"})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	ready, err := gw.Orders.List(ctx, map[string]string{"status": "READY"})
	require.NoError(t, err)
	assert.Empty(t, ready)
}
