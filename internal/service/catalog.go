package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ProductSort string

const (
	SortNameAsc   ProductSort = "name-asc"
	SortNameDesc  ProductSort = "name-desc"
	SortPriceAsc  ProductSort = "price-asc"
	SortPriceDesc ProductSort = "price-desc"
)

// CategoryAll selects every category.
const CategoryAll = "all"

const relatedLimit = 4

// sortPriceTier is the pack size prices are compared at when sorting.
const sortPriceTier = domain.Tier250g

func ToProductSort(s string) (ProductSort, error) {
	switch ProductSort(s) {
	case "":
		return SortNameAsc, nil
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
		return ProductSort(s), nil
	}

	return "", &domain.ValidationError{Field: "sort", Reason: "unknown sort order"}
}

type ProductQuery struct {
	Category string
	Sort     ProductSort
}

type Catalog struct {
	products port.ProductRepository
}

func NewCatalog(products port.ProductRepository) (*Catalog, error) {
	if products == nil {
		return nil, errors.New("products is nil")
	}

	return &Catalog{products: products}, nil
}

func (c *Catalog) List(ctx context.Context, query ProductQuery) ([]domain.Product, error) {
	var (
		products []domain.Product
		err      error
	)

	category := strings.TrimSpace(query.Category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		products, err = c.products.ListProducts(ctx)
	} else {
		products, err = c.products.ListProductsByCategory(ctx, category)
	}
	if err != nil {
		return nil, fmt.Errorf("products.List: %w", err)
	}

	sortProducts(products, query.Sort)

	return products, nil
}

// Categories returns the distinct categories in name order.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	products, err := c.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("products.ListProducts: %w", err)
	}

	categories := lo.Uniq(lo.Map(products, func(p domain.Product, _ int) string {
		return p.Category
	}))
	slices.Sort(categories)

	return categories, nil
}

func (c *Catalog) Get(ctx context.Context, productID int64) (domain.Product, error) {
	product, err := c.products.GetProduct(ctx, productID)
	if err != nil {
		return product, fmt.Errorf("products.GetProduct: %w", err)
	}

	return product, nil
}

// Related returns up to four other products of the same category.
func (c *Catalog) Related(ctx context.Context, productID int64) ([]domain.Product, error) {
	product, err := c.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("c.Get: %w", err)
	}

	sameCategory, err := c.products.ListProductsByCategory(ctx, product.Category)
	if err != nil {
		return nil, fmt.Errorf("products.ListProductsByCategory: %w", err)
	}

	others := lo.Reject(sameCategory, func(p domain.Product, _ int) bool {
		return p.ID == product.ID
	})

	if len(others) > relatedLimit {
		others = others[:relatedLimit]
	}

	return others, nil
}

func sortProducts(products []domain.Product, order ProductSort) {
	byName := func(a, b domain.Product) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.ID, b.ID),
		)
	}
	byPrice := func(a, b domain.Product) int {
		return cmp.Or(sortPrice(a).Cmp(sortPrice(b)), byName(a, b))
	}

	switch order {
	case SortNameDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return byName(b, a) })
	case SortPriceAsc:
		slices.SortStableFunc(products, byPrice)
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return byPrice(b, a) })
	default:
		slices.SortStableFunc(products, byName)
	}
}

// sortPrice treats a product without the comparison tier as free.
func sortPrice(p domain.Product) decimal.Decimal {
	price, ok := p.Prices[sortPriceTier]
	if !ok {
		return decimal.Zero
	}
	return price
}
