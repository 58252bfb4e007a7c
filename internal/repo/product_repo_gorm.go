package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"products-api/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) (bool, error) {
	res := r.db.WithContext(ctx).Create(p)
	return res.RowsAffected > 0, res.Error
}

// Update replaces the caller-writable fields by identity. Updates with an
// explicit field list is used instead of Save: Save would insert a fresh row
// when the id is absent, and absence must stay a plain false.
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) (bool, error) {
	res := r.db.WithContext(ctx).Model(p).
		Select("Name", "Price", "Stock", "UpdatedAt").
		Updates(p)
	return res.RowsAffected > 0, res.Error
}

func (r *ProductRepo) Delete(ctx context.Context, id int) (bool, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// AdjustStock is an optimistic read-check-write: the UPDATE only lands when
// the row still carries the stock value that was read, and a miss means a
// concurrent adjustment won the row, so we re-read and try again. No accepted
// adjustment is lost and the row never goes negative. UpdateColumn is used
// deliberately so the updated_at timestamp stays untouched; only the general
// Update path refreshes it.
func (r *ProductRepo) AdjustStock(ctx context.Context, id, delta int) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if p == nil {
			return 0, domain.ErrProductNotFound
		}
		next := p.Stock + delta
		if next < 0 {
			return 0, &domain.InsufficientStockError{Available: p.Stock, Requested: -delta}
		}
		if next == p.Stock {
			// zero delta; mysql reports 0 rows affected for a no-op UPDATE,
			// which would read as a lost race
			return next, nil
		}
		res := r.db.WithContext(ctx).
			Model(&domain.Product{}).
			Where("id = ? AND stock = ?", id, p.Stock).
			UpdateColumn("stock", next)
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected > 0 {
			return next, nil
		}
		// expected-stock check failed: lost the race, retry
	}
}
