package models

// Product is a menu item.
//
// CategoryID should reference an existing category; when it doesn't, screens
// render a blank category label rather than failing.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost,omitempty"`
	CategoryID  string  `json:"categoryId"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"minStock"`
	SKU         string  `json:"sku,omitempty"`
	Barcode     string  `json:"barcode,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	IsActive    bool    `json:"isActive"`

	// Category is populated by backends that expand the reference inline.
	Category *Category `json:"category,omitempty"`
}

// CategoryName returns the expanded category name, or "" when the reference
// is missing or orphaned.
func (p Product) CategoryName() string {
	if p.Category != nil {
		return p.Category.Name
	}
	return ""
}
