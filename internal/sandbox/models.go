package sandbox

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// The sandbox mirrors the backend's wire shapes so the client cannot tell
// the difference. IDs are random hex strings, like the real service issues.

type User struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	FullName     string    `gorm:"size:255" json:"fullName"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"-"`
}

type Category struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:10" json:"color"`
	Icon        string    `gorm:"size:10" json:"icon"`
	CreatedAt   time.Time `json:"-"`
}

type Product struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	Cost        float64   `json:"cost,omitempty"`
	CategoryID  string    `gorm:"size:32;index" json:"categoryId"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	MinStock    int       `gorm:"not null;default:0" json:"minStock"`
	SKU         string    `gorm:"size:100" json:"sku,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

type Order struct {
	ID          string      `gorm:"primaryKey;size:32" json:"id"`
	TableNumber string      `gorm:"size:10;index" json:"tableNumber"`
	Subtotal    float64     `json:"subtotal"`
	Total       float64     `json:"total"`
	Status      string      `gorm:"size:20;index" json:"status"`
	Notes       string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

type OrderItem struct {
	ID        string  `gorm:"primaryKey;size:32" json:"-"`
	OrderID   string  `gorm:"size:32;index" json:"-"`
	ProductID string  `gorm:"size:32" json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Notes     string  `gorm:"type:text" json:"notes,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// newID returns a random 16-byte hex identifier.
func newID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err) // the OS RNG failing is not recoverable
	}
	return hex.EncodeToString(b)
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = newID()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = newID()
	}
	return nil
}
