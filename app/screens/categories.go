package screens

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/pkg/term"
	"github.com/marespinozac/comanda/pkg/validate"
)

// ValidationError carries field-level messages for a rejected form. The
// request never left the client.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Fields[k])
	}
	return b.String()
}

// CategoryForm is the create form. Color and icon fall back to the house
// defaults the way the menu expects them.
type CategoryForm struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"nullable,hex_color"`
	Icon        string `json:"icon"`
}

const (
	defaultCategoryColor = "#4CAF50"
	defaultCategoryIcon  = "🍽️"
)

// Categories is the category management screen: list plus a create form.
type Categories struct {
	gw *api.Client
	io *term.IO

	categories []models.Category
	Form       CategoryForm
	formOpen   bool
}

// NewCategories builds the screen.
func NewCategories(gw *api.Client, io *term.IO) *Categories {
	return &Categories{gw: gw, io: io}
}

// Load fetches the full category list.
func (s *Categories) Load(ctx context.Context) error {
	categories, err := s.gw.Categories.List(ctx)
	if err != nil {
		return err
	}
	s.categories = categories
	return nil
}

// List returns the loaded categories.
func (s *Categories) List() []models.Category { return s.categories }

// BeginCreate opens a blank form.
func (s *Categories) BeginCreate() {
	s.Form = CategoryForm{Color: defaultCategoryColor, Icon: defaultCategoryIcon}
	s.formOpen = true
}

// FormOpen reports whether a form is being edited.
func (s *Categories) FormOpen() bool { return s.formOpen }

// Submit validates the form, creates the category, reloads the list and
// closes the form. Validation failures never reach the network.
func (s *Categories) Submit(ctx context.Context) error {
	if errs := validate.Struct(s.Form); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}

	input := api.CategoryInput{
		Name:        s.Form.Name,
		Description: s.Form.Description,
		Color:       s.Form.Color,
		Icon:        s.Form.Icon,
	}
	if input.Color == "" {
		input.Color = defaultCategoryColor
	}
	if input.Icon == "" {
		input.Icon = defaultCategoryIcon
	}

	if _, err := s.gw.Categories.Create(ctx, input); err != nil {
		return err
	}
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.CloseForm()
	return nil
}

// CloseForm discards the form.
func (s *Categories) CloseForm() {
	s.Form = CategoryForm{}
	s.formOpen = false
}

// ── Interactive loop ─────────────────────────────────────────────────────────

// Run drives the screen until the user types "q".
func (s *Categories) Run(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		s.io.Println("error:", err)
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.render()
		line, err := s.io.Prompt("new, r refresh, q back")
		if err != nil {
			return nil
		}
		switch line {
		case "q", "":
			return nil
		case "r":
			if err := s.Load(ctx); err != nil {
				s.io.Println("error:", err)
			}
		case "new":
			s.create(ctx)
		default:
			s.io.Println("unknown command")
		}
	}
}

func (s *Categories) create(ctx context.Context) {
	s.BeginCreate()
	defer s.CloseForm()

	var err error
	if s.Form.Name, err = s.io.Prompt("name"); err != nil {
		return
	}
	if s.Form.Description, err = s.io.Prompt("description"); err != nil {
		return
	}
	color, err := s.io.Prompt(fmt.Sprintf("color [%s]", defaultCategoryColor))
	if err != nil {
		return
	}
	if color != "" {
		s.Form.Color = color
	}
	icon, err := s.io.Prompt(fmt.Sprintf("icon [%s]", defaultCategoryIcon))
	if err != nil {
		return
	}
	if icon != "" {
		s.Form.Icon = icon
	}

	if err := s.Submit(ctx); err != nil {
		s.io.Println("error:", err)
		return
	}
	s.io.Println("category created")
}

func (s *Categories) render() {
	s.io.Printf("\n── Categories ──\n")
	rows := [][]string{{"ICON", "NAME", "DESCRIPTION"}}
	for _, c := range s.categories {
		rows = append(rows, []string{c.Icon, c.Name, c.Description})
	}
	s.io.Table(rows)
}
