package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the persisted inventory row. IDs are store-assigned,
// auto-incrementing from 100000 (see database.Migrate).
type Product struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(18,3)" json:"price"`
	Stock     int             `gorm:"not null" json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
	// autoUpdateTime is off: updatedAt stays null until the first Update,
	// and stock adjustment never refreshes it.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// ProductDto carries the caller-writable fields only; id and timestamps
// are server-assigned.
type ProductDto struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (d *ProductDto) Validate() error {
	if d.Name == "" {
		return errors.New("name must not be empty")
	}
	if d.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if d.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}

// ErrProductNotFound is returned by stock adjustment when the row is absent.
// Plain reads signal absence with a nil product instead.
var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError rejects a decrement larger than the current stock.
// The row is left untouched.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

// ProductRepository is the persistence gateway for products. Absent rows are
// a normal outcome: GetByID returns (nil, nil) and the mutators return false.
// Errors are reserved for the store itself (connectivity, constraints).
type ProductRepository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, p *Product) (bool, error)
	Update(ctx context.Context, p *Product) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)

	// AdjustStock applies delta to the row's stock atomically with respect to
	// concurrent adjustments of the same product and returns the new stock.
	// A negative delta that would drive stock below zero fails with
	// *InsufficientStockError without touching the row.
	AdjustStock(ctx context.Context, id, delta int) (int, error)
}
