package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"products-api/internal/domain"
)

// ProductService owns the product business rules; persistence and the
// per-row atomicity of stock adjustment belong to the repository.
type ProductService struct {
	repo domain.ProductRepository
}

func NewProductService(repo domain.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProductService) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, dto domain.ProductDto) (bool, error) {
	p := domain.Product{
		Name:  dto.Name,
		Price: dto.Price,
		Stock: dto.Stock,
	}
	return s.repo.Create(ctx, &p)
}

// Update overwrites name/price/stock of an existing row and refreshes the
// updated timestamp. A missing row is a plain false, not an error.
func (s *ProductService) Update(ctx context.Context, id int, dto domain.ProductDto) (bool, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}
	p.Name = dto.Name
	p.Price = dto.Price
	p.Stock = dto.Stock
	now := time.Now().UTC()
	p.UpdatedAt = &now
	return s.repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// IncrementStock adds quantity to the product's stock. There is no upper
// bound. All business outcomes come back as messages.
func (s *ProductService) IncrementStock(ctx context.Context, id, quantity int) (string, error) {
	stock, err := s.repo.AdjustStock(ctx, id, quantity)
	if errors.Is(err, domain.ErrProductNotFound) {
		return fmt.Sprintf("Product with ID '%d' does not exist, please check", id), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully incremented product stock! Available stock = %d", stock), nil
}

// DecrementStock subtracts quantity from the product's stock. Requests larger
// than the available stock are rejected without mutating the row.
func (s *ProductService) DecrementStock(ctx context.Context, id, quantity int) (string, error) {
	stock, err := s.repo.AdjustStock(ctx, id, -quantity)
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return fmt.Sprintf("Product with ID '%d' does not exist, please check", id), nil
	case errors.As(err, &insufficient):
		return fmt.Sprintf("Insufficient Stock, Available stock: %d, Requested: %d",
			insufficient.Available, insufficient.Requested), nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("Successfully decremented product stock! Available stock = %d", stock), nil
}
