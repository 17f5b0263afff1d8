package api

import (
	"context"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/pkg/http"
)

// CategoriesAPI wraps the /categories endpoints.
type CategoriesAPI struct {
	c *Client
}

// CategoryInput is the create payload.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// List fetches every category.
func (a CategoriesAPI) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := a.c.do(ctx, http.Get(a.c.url("/categories")), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a category.
func (a CategoriesAPI) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	var out models.Category
	if err := a.c.do(ctx, http.Post(a.c.url("/categories")).Body(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductsAPI wraps the /products endpoints.
type ProductsAPI struct {
	c *Client
}

// ProductInput is the create/update payload.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"categoryId"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"minStock"`
	IsActive    bool    `json:"isActive"`
}

// List fetches products, optionally filtered by query params.
func (a ProductsAPI) List(ctx context.Context, params map[string]string) ([]models.Product, error) {
	var out []models.Product
	if err := a.c.do(ctx, http.Get(a.c.url("/products")).QueryMap(params), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one product.
func (a ProductsAPI) Get(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := a.c.do(ctx, http.Get(a.c.url("/products/"+id)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a product.
func (a ProductsAPI) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	var out models.Product
	if err := a.c.do(ctx, http.Post(a.c.url("/products")).Body(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a product.
func (a ProductsAPI) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	var out models.Product
	if err := a.c.do(ctx, http.Put(a.c.url("/products/"+id)).Body(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a product.
func (a ProductsAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.Delete(a.c.url("/products/"+id)), nil)
}
