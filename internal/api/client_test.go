package api_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/pkg/event"
	"github.com/marespinozac/comanda/pkg/testkit"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient() *api.Client {
	return api.New("http://pos.test/api", staticToken("tok"), event.NewBus())
}

func TestBearerAttached(t *testing.T) {
	mt := testkit.Install(t)
	gw := newClient()

	mt.Stub("GET", "/categories", 200, []models.Category{})
	_, err := gw.Categories.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, mt.Calls("GET", "/categories"))
}

func TestUnauthorizedFiresEvent(t *testing.T) {
	mt := testkit.Install(t)
	bus := event.NewBus()
	gw := api.New("http://pos.test/api", staticToken("stale"), bus)

	fired := 0
	bus.Listen(api.EventUnauthorized, func(any) { fired++ })

	mt.Stub("GET", "/products", 401, map[string]string{"error": "token expired"})
	_, err := gw.Products.List(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, 1, fired)
}

func TestRequestErrorSurfacesServerMessage(t *testing.T) {
	mt := testkit.Install(t)
	gw := newClient()

	mt.Stub("POST", "/categories", 400, map[string]string{"error": "name is required"})
	_, err := gw.Categories.Create(context.Background(), api.CategoryInput{})

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.KindRequest, apiErr.Kind)
	assert.Equal(t, "name is required", apiErr.Message)
}

func TestServerErrorIsGeneric(t *testing.T) {
	mt := testkit.Install(t)
	gw := newClient()

	mt.Stub("GET", "/orders", 500, map[string]string{"error": "pq: connection reset"})
	_, err := gw.Orders.List(context.Background(), nil)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.KindServer, apiErr.Kind)
	// internal details never reach the user
	assert.NotContains(t, apiErr.Message, "pq:")
}

func TestOrdersListDecodesBareArray(t *testing.T) {
	mt := testkit.Install(t)
	gw := newClient()

	mt.Stub("GET", "/orders", 200, []models.Order{
		{ID: "o1", TableNumber: "5", Status: models.StatusPending},
	})

	orders, err := gw.Orders.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "5", orders[0].TableNumber)
}

func TestOrdersListDecodesWrappedObject(t *testing.T) {
	mt := testkit.Install(t)
	gw := newClient()

	mt.Stub("GET", "/orders", 200, map[string]any{
		"orders": []models.Order{
			{ID: "o1", Status: models.StatusPending},
			{ID: "o2", Status: models.StatusReady},
		},
	})

	orders, err := gw.Orders.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrdersListEmptyBodyMeansNoOrders(t *testing.T) {
	mt := testkit.Install(t)
	gw := newClient()

	mt.Stub("GET", "/orders", 200, nil)

	orders, err := gw.Orders.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrdersCreatePayload(t *testing.T) {
	mt := testkit.Install(t)
	gw := newClient()

	mt.Stub("POST", "/orders", 201, models.Order{ID: "o1", Status: models.StatusPending})

	_, err := gw.Orders.Create(context.Background(), api.OrderInput{
		TableNumber: "12",
		Items:       []models.OrderItem{{ProductID: "p1", Quantity: 2, Price: 10}},
		Subtotal:    20,
		Total:       20,
	})
	require.NoError(t, err)

	var sent api.OrderInput
	require.NoError(t, mt.LastBody("POST", "/orders", &sent))
	assert.Equal(t, "12", sent.TableNumber)
	assert.InDelta(t, 20.0, sent.Total, 0.001)
	require.Len(t, sent.Items, 1)
	assert.Equal(t, 2, sent.Items[0].Quantity)
}

func TestUpdateStatusBody(t *testing.T) {
	mt := testkit.Install(t)
	gw := newClient()

	mt.Stub("PATCH", "/orders/o1", 200, nil)
	require.NoError(t, gw.Orders.UpdateStatus(context.Background(), "o1", models.StatusPreparing))

	var sent map[string]string
	require.NoError(t, mt.LastBody("PATCH", "/orders/o1", &sent))
	assert.Equal(t, "PREPARING", sent["status"])
}
