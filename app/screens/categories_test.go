package screens_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/app/screens"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/pkg/testkit"
)

func loadedCategories(t *testing.T, mt *testkit.MockTransport) *screens.Categories {
	t.Helper()
	mt.Stub("GET", "/categories", 200, []models.Category{
		{ID: "c1", Name: "Mains", Color: "#FF5722", Icon: "🍽️"},
	})

	s := screens.NewCategories(newGateway(), quietIO(""))
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestCategoriesCreateWithDefaults(t *testing.T) {
	mt := testkit.Install(t)
	s := loadedCategories(t, mt)

	mt.Stub("POST", "/categories", 201, models.Category{ID: "c2"})

	s.BeginCreate()
	require.True(t, s.FormOpen())
	s.Form.Name = "Desserts"
	s.Form.Color = ""
	s.Form.Icon = ""

	require.NoError(t, s.Submit(context.Background()))

	var sent api.CategoryInput
	require.NoError(t, mt.LastBody("POST", "/categories", &sent))
	assert.Equal(t, "Desserts", sent.Name)
	assert.Equal(t, "#4CAF50", sent.Color)
	assert.Equal(t, "🍽️", sent.Icon)
	assert.False(t, s.FormOpen())
}

func TestCategoriesMissingNameBlocksRequest(t *testing.T) {
	mt := testkit.Install(t)
	s := loadedCategories(t, mt)

	s.BeginCreate()
	s.Form.Name = "   "

	before := mt.Total()
	err := s.Submit(context.Background())

	var verr *screens.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Equal(t, before, mt.Total())
	assert.True(t, s.FormOpen())
}

func TestCategoriesBadColorRejected(t *testing.T) {
	mt := testkit.Install(t)
	s := loadedCategories(t, mt)

	s.BeginCreate()
	s.Form.Name = "Drinks"
	s.Form.Color = "green"

	err := s.Submit(context.Background())
	var verr *screens.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "color")
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &screens.ValidationError{Fields: map[string]string{
		"name":  "The name field is required.",
		"color": "The color must be a hex color like #4CAF50.",
	}}
	assert.Equal(t,
		"The color must be a hex color like #4CAF50.; The name field is required.",
		err.Error())
}
