package models

// CartLine is one product in a cart being assembled for a table.
// Subtotal always equals Price × Quantity.
type CartLine struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
	Subtotal  float64
}

// Cart holds one table's order while the waiter assembles it. It lives only
// in memory and is discarded on submission or when the waiter walks away.
type Cart struct {
	lines []CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart { return &Cart{} }

// Add puts one unit of the product in the cart. A product already present
// gets its quantity bumped by one instead of a second line.
func (c *Cart) Add(p Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			c.lines[i].Subtotal = float64(c.lines[i].Quantity) * c.lines[i].Price
			return
		}
	}
	c.lines = append(c.lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		Subtotal:  p.Price,
	})
}

// SetQuantity replaces a line's quantity. Zero (or less) removes the line.
// Unknown product IDs are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			c.lines[i].Subtotal = float64(quantity) * c.lines[i].Price
			return
		}
	}
}

// Remove deletes the line for productID outright.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productID, if present.
func (c *Cart) Line(productID string) (CartLine, bool) {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Subtotal
	}
	return sum
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Clear discards every line.
func (c *Cart) Clear() { c.lines = nil }

// Items converts the cart into order items ready for submission.
func (c *Cart) Items() []OrderItem {
	items := make([]OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, OrderItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}
	return items
}
