package screens

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/pkg/term"
	"github.com/marespinozac/comanda/pkg/validate"
)

// ProductForm is the create/edit form. Price arrives as text from the
// terminal and is coerced on submit; everything richer is the server's call.
type ProductForm struct {
	Name       string `json:"name" validate:"required,max=255"`
	CategoryID string `json:"categoryId" validate:"required"`
	Price      string `json:"price" validate:"required,numeric,gte=0"`
	IsActive   bool   `json:"isActive"`
}

// Defaults applied when a product is created without stock figures.
const (
	defaultStock    = 100
	defaultMinStock = 5
)

// Products is the product management screen: list, create, edit, delete.
type Products struct {
	gw *api.Client
	io *term.IO

	products   []models.Product
	categories []models.Category
	Form       ProductForm
	editing    *models.Product
	formOpen   bool
}

// NewProducts builds the screen.
func NewProducts(gw *api.Client, io *term.IO) *Products {
	return &Products{gw: gw, io: io}
}

// Load fetches the full product and category lists.
func (s *Products) Load(ctx context.Context) error {
	products, err := s.gw.Products.List(ctx, nil)
	if err != nil {
		return err
	}
	categories, err := s.gw.Categories.List(ctx)
	if err != nil {
		return err
	}
	s.products = products
	s.categories = categories
	return nil
}

// List returns the loaded products.
func (s *Products) List() []models.Product { return s.products }

// CategoryLabel resolves a product's category name; orphaned references
// degrade to a blank label.
func (s *Products) CategoryLabel(p models.Product) string {
	if name := p.CategoryName(); name != "" {
		return name
	}
	for _, c := range s.categories {
		if c.ID == p.CategoryID {
			return c.Name
		}
	}
	return ""
}

// BeginCreate opens a blank form.
func (s *Products) BeginCreate() {
	s.Form = ProductForm{IsActive: true}
	s.editing = nil
	s.formOpen = true
}

// BeginEdit opens the form pre-filled from an existing product.
func (s *Products) BeginEdit(id string) error {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			s.editing = &p
			s.Form = ProductForm{
				Name:       p.Name,
				CategoryID: p.CategoryID,
				Price:      strconv.FormatFloat(p.Price, 'f', -1, 64),
				IsActive:   p.IsActive,
			}
			s.formOpen = true
			return nil
		}
	}
	return errors.New("no such product")
}

// FormOpen reports whether a form is being edited.
func (s *Products) FormOpen() bool { return s.formOpen }

// Editing returns the product being edited, nil when creating.
func (s *Products) Editing() *models.Product { return s.editing }

// Submit validates the form, creates or updates the product, reloads the
// list and closes the form. Validation failures never reach the network.
func (s *Products) Submit(ctx context.Context) error {
	if errs := validate.Struct(s.Form); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}

	price, err := strconv.ParseFloat(s.Form.Price, 64)
	if err != nil {
		return &ValidationError{Fields: map[string]string{"price": "The price must be a number."}}
	}

	input := api.ProductInput{
		Name:       s.Form.Name,
		CategoryID: s.Form.CategoryID,
		Price:      price,
		IsActive:   s.Form.IsActive,
		Stock:      defaultStock,
		MinStock:   defaultMinStock,
	}

	if s.editing != nil {
		// Edits keep the product's stock figures; the form doesn't touch them.
		input.Stock = s.editing.Stock
		input.MinStock = s.editing.MinStock
		_, err = s.gw.Products.Update(ctx, s.editing.ID, input)
	} else {
		_, err = s.gw.Products.Create(ctx, input)
	}
	if err != nil {
		return err
	}

	if err := s.Load(ctx); err != nil {
		return err
	}
	s.CloseForm()
	return nil
}

// Delete removes a product after confirmation, then reloads the list.
func (s *Products) Delete(ctx context.Context, id string) error {
	if !s.io.Confirm("Delete this product?") {
		return nil
	}
	if err := s.gw.Products.Delete(ctx, id); err != nil {
		return err
	}
	return s.Load(ctx)
}

// CloseForm discards the form.
func (s *Products) CloseForm() {
	s.Form = ProductForm{}
	s.editing = nil
	s.formOpen = false
}

// ── Interactive loop ─────────────────────────────────────────────────────────

// Run drives the screen until the user types "q".
func (s *Products) Run(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		s.io.Println("error:", err)
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.render()
		line, err := s.io.Prompt("new, edit <#>, del <#>, r refresh, q back")
		if err != nil {
			return nil
		}
		switch {
		case line == "q" || line == "":
			return nil
		case line == "r":
			if err := s.Load(ctx); err != nil {
				s.io.Println("error:", err)
			}
		case line == "new":
			s.fill(ctx, false, models.Product{})
		default:
			s.pickCommand(ctx, line)
		}
	}
}

func (s *Products) pickCommand(ctx context.Context, line string) {
	var verb string
	var idx int
	if _, err := fmt.Sscanf(line, "%s %d", &verb, &idx); err != nil {
		s.io.Println("unknown command")
		return
	}
	if idx < 1 || idx > len(s.products) {
		s.io.Println("no such product")
		return
	}
	p := s.products[idx-1]

	switch verb {
	case "edit":
		s.fill(ctx, true, p)
	case "del":
		if err := s.Delete(ctx, p.ID); err != nil {
			s.io.Println("error:", err)
		}
	default:
		s.io.Println("unknown command")
	}
}

// fill walks the user through the form fields and submits.
func (s *Products) fill(ctx context.Context, edit bool, p models.Product) {
	if edit {
		if err := s.BeginEdit(p.ID); err != nil {
			s.io.Println("error:", err)
			return
		}
	} else {
		s.BeginCreate()
	}
	defer s.CloseForm()

	if v, err := s.io.Prompt("name [" + s.Form.Name + "]"); err != nil {
		return
	} else if v != "" {
		s.Form.Name = v
	}

	s.io.Println("categories:")
	for i, c := range s.categories {
		s.io.Printf("  %d) %s\n", i+1, c.Name)
	}
	if v, err := s.io.Prompt("category #"); err != nil {
		return
	} else if v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil && n >= 1 && n <= len(s.categories) {
			s.Form.CategoryID = s.categories[n-1].ID
		}
	}

	if v, err := s.io.Prompt("price [" + s.Form.Price + "]"); err != nil {
		return
	} else if v != "" {
		s.Form.Price = v
	}

	if s.io.Confirm("active?") {
		s.Form.IsActive = true
	} else {
		s.Form.IsActive = false
	}

	if err := s.Submit(ctx); err != nil {
		s.io.Println("error:", err)
		return
	}
	if edit {
		s.io.Println("product updated")
	} else {
		s.io.Println("product created")
	}
}

func (s *Products) render() {
	s.io.Printf("\n── Products ──\n")
	rows := [][]string{{"#", "NAME", "CATEGORY", "PRICE", "ACTIVE"}}
	for i, p := range s.products {
		active := "no"
		if p.IsActive {
			active = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), p.Name, s.CategoryLabel(p), term.Money(p.Price), active,
		})
	}
	s.io.Table(rows)
}
