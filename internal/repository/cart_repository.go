package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
)

type cartRepository struct {
	dbtx DBTX
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{dbtx: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{dbtx: tx}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) ([]domain.CartLine, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT product_id, weight, name, unit_price, quantity, image_url
		FROM cart_lines
		WHERE owner_id = $1
		ORDER BY position`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.GetCart: %w", err)
	}

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CartLine, error) {
		var (
			l      domain.CartLine
			weight string
		)

		if err := row.Scan(&l.Key.ProductID, &weight, &l.Name, &l.UnitPrice, &l.Quantity, &l.ImageURL); err != nil {
			return l, err
		}

		tier, err := domain.ToWeightTier(weight)
		if err != nil {
			return l, fmt.Errorf("domain.ToWeightTier[%s]: %w", weight, err)
		}
		l.Key.Tier = tier

		return l, nil
	})
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	return lines, nil
}

// SaveCart replaces the stored snapshot of the owner's cart.
func (r *cartRepository) SaveCart(ctx context.Context, ownerID string, lines []domain.CartLine) error {
	if ownerID == "" {
		return errors.New("ownerID is empty")
	}

	if err := withTxNoResult(ctx, r.dbtx, func(q DBTX) error {
		if _, err := q.Exec(ctx, `DELETE FROM cart_lines WHERE owner_id = $1`, ownerID); err != nil {
			return fmt.Errorf("q.DeleteCart: %w", err)
		}

		if len(lines) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, l := range lines {
			batch.Queue(`
				INSERT INTO cart_lines (owner_id, position, product_id, weight, name, unit_price, quantity, image_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				ownerID, i, l.Key.ProductID, string(l.Key.Tier), l.Name, l.UnitPrice, l.Quantity, l.ImageURL)
		}

		if err := sendBatch(ctx, q, batch); err != nil {
			return fmt.Errorf("q.InsertCartLines: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, ownerID string) error {
	if _, err := r.dbtx.Exec(ctx, `DELETE FROM cart_lines WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("q.DeleteCart: %w", err)
	}

	return nil
}
