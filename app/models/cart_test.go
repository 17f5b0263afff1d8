package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marespinozac/comanda/app/models"
)

func TestCartAddMergesRepeatedProduct(t *testing.T) {
	cart := models.NewCart()
	pizza := models.Product{ID: "p1", Name: "Margherita pizza", Price: 12.50}

	for i := 0; i < 3; i++ {
		cart.Add(pizza)
	}

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.InDelta(t, 37.50, lines[0].Subtotal, 0.001)
}

func TestCartTotal(t *testing.T) {
	cart := models.NewCart()
	burger := models.Product{ID: "p1", Name: "Burger", Price: 10.00}
	wine := models.Product{ID: "p2", Name: "House red", Price: 5.50}

	cart.Add(burger)
	cart.Add(burger)
	cart.Add(wine)

	assert.InDelta(t, 25.50, cart.Total(), 0.001)
}

func TestCartSetQuantity(t *testing.T) {
	cart := models.NewCart()
	cart.Add(models.Product{ID: "p1", Name: "Soup", Price: 5.00})

	cart.SetQuantity("p1", 4)
	line, ok := cart.Line("p1")
	require.True(t, ok)
	assert.Equal(t, 4, line.Quantity)
	assert.InDelta(t, 20.00, line.Subtotal, 0.001)

	// zero quantity drops the line entirely
	cart.SetQuantity("p1", 0)
	_, ok = cart.Line("p1")
	assert.False(t, ok)
	assert.True(t, cart.Empty())
}

func TestCartSetQuantityUnknownProduct(t *testing.T) {
	cart := models.NewCart()
	cart.Add(models.Product{ID: "p1", Name: "Soup", Price: 5.00})

	cart.SetQuantity("missing", 7)

	require.Len(t, cart.Lines(), 1)
	line, _ := cart.Line("p1")
	assert.Equal(t, 1, line.Quantity)
}

func TestCartRemoveKeepsOrder(t *testing.T) {
	cart := models.NewCart()
	cart.Add(models.Product{ID: "a", Name: "A", Price: 1})
	cart.Add(models.Product{ID: "b", Name: "B", Price: 2})
	cart.Add(models.Product{ID: "c", Name: "C", Price: 3})

	cart.Remove("b")

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].ProductID)
	assert.Equal(t, "c", lines[1].ProductID)
}

func TestCartItems(t *testing.T) {
	cart := models.NewCart()
	cart.Add(models.Product{ID: "p1", Name: "Espresso", Price: 2.20})
	cart.Add(models.Product{ID: "p1", Name: "Espresso", Price: 2.20})

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 2.20, items[0].Price, 0.001)
}

func TestCartClear(t *testing.T) {
	cart := models.NewCart()
	cart.Add(models.Product{ID: "p1", Price: 9.99})

	cart.Clear()

	assert.True(t, cart.Empty())
	assert.Zero(t, cart.Total())
}
