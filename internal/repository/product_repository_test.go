package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
	"github.com/nikolayk812/nutshop/internal/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type productRepositorySuite struct {
	suite.Suite

	repo      port.ProductRepository
	pool      *pgxpool.Pool
	container testcontainers.Container
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(productRepositorySuite))
}

func (suite *productRepositorySuite) SetupSuite() {
	var err error

	suite.container, suite.pool, err = startMigratedPostgres(suite.T().Context())
	suite.Require().NoError(err)

	suite.repo = repository.NewProduct(suite.pool)
}

func (suite *productRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *productRepositorySuite) TestInsertProduct() {
	defer suite.deleteAll()

	tests := []struct {
		name        string
		productFunc func() domain.Product
		wantError   string
	}{
		{
			name:        "all tiers priced: ok",
			productFunc: func() domain.Product { return randomProduct("nuts", domain.WeightTiers()...) },
		},
		{
			name:        "some tiers unpriced: ok",
			productFunc: func() domain.Product { return randomProduct("dried-fruits", domain.Tier250g, domain.Tier1kg) },
		},
		{
			name: "no tiers priced, out of stock: ok",
			productFunc: func() domain.Product {
				p := randomProduct("seeds")
				p.InStock = false
				return p
			},
		},
		{
			name: "empty name: fail",
			productFunc: func() domain.Product {
				p := randomProduct("nuts", domain.Tier100g)
				p.Name = ""
				return p
			},
			wantError: "product name is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			expected := tt.productFunc()

			id, err := suite.repo.InsertProduct(ctx, expected)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			actual, err := suite.repo.GetProduct(ctx, id)
			require.NoError(t, err)

			expected.ID = id
			assertProduct(t, expected, actual)
		})
	}
}

func (suite *productRepositorySuite) TestGetProductNotFound() {
	t := suite.T()

	_, err := suite.repo.GetProduct(t.Context(), 987654)
	require.EqualError(t, err, "q.GetProduct: product not found")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func (suite *productRepositorySuite) TestListProducts() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	for _, p := range []struct{ name, category string }{
		{"Walnut", "nuts"},
		{"Apricot", "dried-fruits"},
		{"Cashew", "nuts"},
	} {
		product := randomProduct(p.category, domain.Tier250g)
		product.Name = p.name
		_, err := suite.repo.InsertProduct(ctx, product)
		require.NoError(t, err)
	}

	all, err := suite.repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apricot", "Cashew", "Walnut"}, productNames(all))

	nuts, err := suite.repo.ListProductsByCategory(ctx, "nuts")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cashew", "Walnut"}, productNames(nuts))

	none, err := suite.repo.ListProductsByCategory(ctx, "spices")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func (suite *productRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE products")
	suite.NoError(err)
}

func randomProduct(category string, tiers ...domain.WeightTier) domain.Product {
	prices := make(map[domain.WeightTier]decimal.Decimal, len(tiers))
	for _, tier := range tiers {
		prices[tier] = decimal.NewFromFloat(gofakeit.Price(50, 2000)).Round(2)
	}

	return domain.Product{
		Name:        gofakeit.Noun(),
		Category:    category,
		Description: gofakeit.Sentence(8),
		ImageURL:    gofakeit.URL(),
		InStock:     true,
		Prices:      prices,
	}
}

func productNames(products []domain.Product) []string {
	return lo.Map(products, func(p domain.Product, _ int) string {
		return p.Name
	})
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "CreatedAt"),
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
	assert.False(t, actual.CreatedAt.IsZero())
}
