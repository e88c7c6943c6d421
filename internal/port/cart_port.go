package port

import (
	"context"

	"github.com/nikolayk812/nutshop/internal/domain"
)

// CartRepository keeps a snapshot of session carts so they survive restarts.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, ownerID string, lines []domain.CartLine) error
	DeleteCart(ctx context.Context, ownerID string) error
}
