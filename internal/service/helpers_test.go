package service_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/nutshop/internal/checkout"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testCheckoutOptions = checkout.Options{
	Policy:        domain.DefaultDeliveryPolicy,
	StoreTimeout:  time.Second,
	NotifyTimeout: time.Second,
}

func product(id int64, name, category string, prices map[domain.WeightTier]int64) domain.Product {
	p := domain.Product{
		ID:       id,
		Name:     name,
		Category: category,
		InStock:  true,
		Prices:   make(map[domain.WeightTier]decimal.Decimal, len(prices)),
	}

	for tier, price := range prices {
		p.Prices[tier] = decimal.NewFromInt(price)
	}

	return p
}

func seedProducts() *memProducts {
	return &memProducts{products: []domain.Product{
		product(1, "Cashew", "nuts", map[domain.WeightTier]int64{domain.Tier250g: 300, domain.Tier500g: 580}),
		product(2, "Almond", "nuts", map[domain.WeightTier]int64{domain.Tier500g: 450, domain.Tier1kg: 880}),
		product(3, "Fig", "dried-fruits", map[domain.WeightTier]int64{domain.Tier250g: 340}),
		product(4, "Walnut", "nuts", map[domain.WeightTier]int64{domain.Tier100g: 90, domain.Tier250g: 210}),
		product(5, "Pista", "nuts", map[domain.WeightTier]int64{domain.Tier250g: 390}),
		product(6, "Dates", "dried-fruits", map[domain.WeightTier]int64{domain.Tier1kg: 420}),
		product(7, "Brazil Nut", "nuts", nil),
		product(8, "Hazelnut", "nuts", map[domain.WeightTier]int64{domain.Tier250g: 500}),
	}}
}

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FullName:    "Ravi Kumar",
		PhoneNumber: "9876543210",
		Email:       "ravi@example.com",
		Address:     "12-3 Beach Road",
		City:        domain.ServiceCity,
		Pincode:     "530003",
		Landmark:    "Near RK Beach",
		Notes:       "Ring twice",
	}
}

type fixture struct {
	products *memProducts
	orders   *memOrders
	carts    *memCarts
	notifier *recNotifier

	catalog  *service.Catalog
	checkout *service.Checkout
	store    *service.CartStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		products: seedProducts(),
		orders:   newMemOrders(),
		carts:    newMemCarts(),
		notifier: &recNotifier{},
	}

	var err error

	f.catalog, err = service.NewCatalog(f.products)
	require.NoError(t, err)

	f.checkout, err = service.NewCheckout(f.orders, f.notifier, testCheckoutOptions)
	require.NoError(t, err)

	f.store, err = service.NewCartStore(f.catalog, f.checkout, f.carts, domain.DefaultDeliveryPolicy)
	require.NoError(t, err)

	return f
}
