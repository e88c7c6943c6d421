package port

import (
	"context"

	"github.com/nikolayk812/nutshop/internal/domain"
)

type ProductRepository interface {
	// ListProducts returns products ordered by name.
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)

	InsertProduct(ctx context.Context, product domain.Product) (int64, error)
}
