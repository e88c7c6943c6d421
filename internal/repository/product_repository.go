package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name, category, description, image_url, in_stock,
	price_100g, price_250g, price_500g, price_1kg, price_2kg, created_at`

type productRepository struct {
	dbtx DBTX
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{dbtx: pool}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{dbtx: tx}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.dbtx.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	return collectProducts(rows)
}

func (r *productRepository) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	rows, err := r.dbtx.Query(ctx, `SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY name, id`, category)
	if err != nil {
		return nil, fmt.Errorf("q.ListProductsByCategory: %w", err)
	}

	return collectProducts(rows)
}

func (r *productRepository) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	row := r.dbtx.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, productID)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product, fmt.Errorf("q.GetProduct: %w", domain.ErrProductNotFound)
		}
		return product, fmt.Errorf("q.GetProduct: %w", err)
	}

	return product, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (int64, error) {
	if product.Name == "" {
		return 0, errors.New("product name is empty")
	}

	prices := make([]decimal.NullDecimal, 0, len(domain.WeightTiers()))
	for _, tier := range domain.WeightTiers() {
		price, ok := product.Prices[tier]
		prices = append(prices, decimal.NullDecimal{Decimal: price, Valid: ok})
	}

	var id int64

	err := r.dbtx.QueryRow(ctx, `
		INSERT INTO products (name, category, description, image_url, in_stock,
			price_100g, price_250g, price_500g, price_1kg, price_2kg)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		product.Name, product.Category, product.Description, product.ImageURL, product.InStock,
		prices[0], prices[1], prices[2], prices[3], prices[4]).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("q.InsertProduct: %w", err)
	}

	return id, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p      domain.Product
		prices = make([]decimal.NullDecimal, len(domain.WeightTiers()))
	)

	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL, &p.InStock,
		&prices[0], &prices[1], &prices[2], &prices[3], &prices[4], &p.CreatedAt); err != nil {
		return p, err
	}

	p.Prices = make(map[domain.WeightTier]decimal.Decimal)
	for i, tier := range domain.WeightTiers() {
		if prices[i].Valid {
			p.Prices[tier] = prices[i].Decimal
		}
	}

	return p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	return products, nil
}
