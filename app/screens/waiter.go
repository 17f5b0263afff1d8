package screens

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/pkg/logger"
	"github.com/marespinozac/comanda/pkg/term"
)

// ErrEmptyCart rejects a submission before any network call is made.
var ErrEmptyCart = errors.New("add products to the order first")

// ErrNoTable means an order action was attempted from the tables view.
var ErrNoTable = errors.New("select a table first")

// WaiterView is the waiter screen's state.
type WaiterView string

const (
	ViewTables WaiterView = "tables"
	ViewOrder  WaiterView = "order"
)

// Waiter is the order-entry screen: a grid of tables, then a menu plus cart
// for the selected table. The cart belongs to this screen alone and never
// outlives a submission or a walk back to the grid.
type Waiter struct {
	gw         *api.Client
	io         *term.IO
	user       models.User
	tableCount int

	view     WaiterView
	table    int
	products []models.Product
	orders   []models.Order
	cart     *models.Cart
	category string // "" shows every category
}

// NewWaiter builds the screen on the tables view with an empty cart.
func NewWaiter(gw *api.Client, io *term.IO, user models.User, tableCount int) *Waiter {
	return &Waiter{
		gw:         gw,
		io:         io,
		user:       user,
		tableCount: tableCount,
		view:       ViewTables,
		cart:       models.NewCart(),
	}
}

// View returns the current state.
func (s *Waiter) View() WaiterView { return s.view }

// Table returns the selected table, 0 on the grid.
func (s *Waiter) Table() int { return s.table }

// Cart exposes the in-progress order.
func (s *Waiter) Cart() *models.Cart { return s.cart }

// Load fetches the active menu and the current order list.
func (s *Waiter) Load(ctx context.Context) error {
	products, err := s.gw.Products.List(ctx, nil)
	if err != nil {
		return err
	}
	s.products = s.products[:0]
	for _, p := range products {
		if p.IsActive {
			s.products = append(s.products, p)
		}
	}

	return s.refreshOrders(ctx)
}

func (s *Waiter) refreshOrders(ctx context.Context) error {
	orders, err := s.gw.Orders.List(ctx, nil)
	if err != nil {
		return err
	}
	s.orders = orders
	return nil
}

// SelectTable enters the order view for a table, starting from a clean cart.
func (s *Waiter) SelectTable(n int) error {
	if n < 1 || n > s.tableCount {
		return errors.New("no such table")
	}
	s.table = n
	s.cart.Clear()
	s.view = ViewOrder
	return nil
}

// Back returns to the tables grid without touching anything else.
func (s *Waiter) Back() {
	s.view = ViewTables
	s.table = 0
}

// TableOrders lists the table's orders that are still in play.
func (s *Waiter) TableOrders(table int) []models.Order {
	number := strconv.Itoa(table)
	var out []models.Order
	for _, o := range s.orders {
		if o.TableNumber == number && !o.Status.Terminal() {
			out = append(out, o)
		}
	}
	return out
}

// Categories returns the distinct category names present on the loaded menu.
func (s *Waiter) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range s.products {
		name := p.CategoryName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// SetCategory filters the menu; "" shows everything.
func (s *Waiter) SetCategory(name string) { s.category = name }

// Menu returns the products to offer, honoring the category filter.
func (s *Waiter) Menu() []models.Product {
	if s.category == "" {
		return s.products
	}
	var out []models.Product
	for _, p := range s.products {
		if p.CategoryName() == s.category {
			out = append(out, p)
		}
	}
	return out
}

// AddToCart puts one unit of a loaded product in the cart.
func (s *Waiter) AddToCart(productID string) error {
	if s.view != ViewOrder {
		return ErrNoTable
	}
	for _, p := range s.products {
		if p.ID == productID {
			s.cart.Add(p)
			return nil
		}
	}
	return errors.New("no such product on the menu")
}

// SetQuantity adjusts a cart line; zero removes it.
func (s *Waiter) SetQuantity(productID string, quantity int) {
	s.cart.SetQuantity(productID, quantity)
}

// RemoveFromCart deletes a cart line outright.
func (s *Waiter) RemoveFromCart(productID string) {
	s.cart.Remove(productID)
}

// SendToKitchen submits the cart as one order. An empty cart is rejected
// locally. On success the cart is cleared, the screen returns to the tables
// grid, and the order list refreshes so the grid shows the new ticket.
func (s *Waiter) SendToKitchen(ctx context.Context) error {
	if s.view != ViewOrder {
		return ErrNoTable
	}
	if s.cart.Empty() {
		return ErrEmptyCart
	}

	subtotal := s.cart.Total()
	input := api.OrderInput{
		TableNumber: strconv.Itoa(s.table),
		Items:       s.cart.Items(),
		Subtotal:    subtotal,
		Total:       subtotal,
	}

	if _, err := s.gw.Orders.Create(ctx, input); err != nil {
		return err
	}

	logger.Info("waiter: order sent to kitchen", "table", s.table, "total", subtotal)
	s.cart.Clear()
	s.Back()

	if err := s.refreshOrders(ctx); err != nil {
		// The submission already succeeded; a stale grid is tolerable.
		logger.Warn("waiter: could not refresh orders", "error", err)
	}
	return nil
}

// ── Interactive loop ─────────────────────────────────────────────────────────

// Run drives the screen until the waiter types "back" on the tables grid.
func (s *Waiter) Run(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		s.io.Println("error:", err)
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.view == ViewTables {
			done, err := s.runTables(ctx)
			if done || err != nil {
				return err
			}
		} else {
			if err := s.runOrder(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *Waiter) runTables(ctx context.Context) (done bool, err error) {
	s.renderTables()
	line, err := s.io.Prompt("table # (r refresh, q back)")
	if err != nil {
		return true, nil
	}
	switch line {
	case "q", "":
		return true, nil
	case "r":
		if err := s.refreshOrders(ctx); err != nil {
			s.io.Println("error:", err)
		}
		return false, nil
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil {
		s.io.Println("enter a table number")
		return false, nil
	}
	if err := s.SelectTable(n); err != nil {
		s.io.Println("error:", err)
	}
	return false, nil
}

func (s *Waiter) runOrder(ctx context.Context) error {
	s.renderOrder()
	line, err := s.io.Prompt("add <#>, qty <#> <n>, rm <#>, cat <name>, send, back")
	if err != nil {
		s.Back()
		return nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "back":
		s.Back()
	case "cat":
		if len(fields) > 1 {
			s.SetCategory(strings.Join(fields[1:], " "))
		} else {
			s.SetCategory("")
		}
	case "add":
		if p, ok := s.menuPick(fields); ok {
			if err := s.AddToCart(p.ID); err != nil {
				s.io.Println("error:", err)
			}
		}
	case "qty":
		if p, ok := s.menuPick(fields); ok && len(fields) > 2 {
			if n, err := strconv.Atoi(fields[2]); err == nil {
				s.SetQuantity(p.ID, n)
			}
		}
	case "rm":
		if p, ok := s.menuPick(fields); ok {
			s.RemoveFromCart(p.ID)
		}
	case "send":
		if err := s.SendToKitchen(ctx); err != nil {
			s.io.Println("error:", err)
		} else {
			s.io.Println("order sent to kitchen")
		}
	default:
		s.io.Println("unknown command")
	}
	return nil
}

// menuPick resolves a 1-based menu index typed by the waiter.
func (s *Waiter) menuPick(fields []string) (models.Product, bool) {
	if len(fields) < 2 {
		s.io.Println("which item?")
		return models.Product{}, false
	}
	idx, err := strconv.Atoi(fields[1])
	menu := s.Menu()
	if err != nil || idx < 1 || idx > len(menu) {
		s.io.Println("no such menu item")
		return models.Product{}, false
	}
	return menu[idx-1], true
}

func (s *Waiter) renderTables() {
	s.io.Printf("\n── Tables — %s ──\n", s.user.FullName)
	for n := 1; n <= s.tableCount; n++ {
		marker := "  "
		var badges []string
		for _, o := range s.TableOrders(n) {
			badges = append(badges, string(o.Status))
		}
		if len(badges) > 0 {
			marker = "* "
		}
		s.io.Printf("%s%2d  %s\n", marker, n, strings.Join(badges, " "))
	}
}

func (s *Waiter) renderOrder() {
	s.io.Printf("\n── Table %d ──\n", s.table)
	if s.category != "" {
		s.io.Printf("category: %s (cat to clear)\n", s.category)
	}

	rows := [][]string{{"#", "ITEM", "PRICE"}}
	for i, p := range s.Menu() {
		rows = append(rows, []string{strconv.Itoa(i + 1), p.Name, term.Money(p.Price)})
	}
	s.io.Table(rows)

	if s.cart.Empty() {
		s.io.Println("\ncart: empty")
		return
	}
	s.io.Println("\ncart:")
	rows = [][]string{{"QTY", "ITEM", "SUBTOTAL"}}
	for _, l := range s.cart.Lines() {
		rows = append(rows, []string{strconv.Itoa(l.Quantity) + "x", l.Name, term.Money(l.Subtotal)})
	}
	rows = append(rows, []string{"", "TOTAL", term.Money(s.cart.Total())})
	s.io.Table(rows)
}
