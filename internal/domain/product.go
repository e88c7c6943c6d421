package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type WeightTier string

// remember to add new tiers to the weightTiers slice, it defines the display order
const (
	Tier100g WeightTier = "100g"
	Tier250g WeightTier = "250g"
	Tier500g WeightTier = "500g"
	Tier1kg  WeightTier = "1kg"
	Tier2kg  WeightTier = "2kg"
)

var weightTiers = []WeightTier{Tier100g, Tier250g, Tier500g, Tier1kg, Tier2kg}

func ToWeightTier(s string) (WeightTier, error) {
	for _, tier := range weightTiers {
		if string(tier) == s {
			return tier, nil
		}
	}

	return "", errors.New("invalid weight tier")
}

// WeightTiers returns all tiers from the smallest to the largest pack.
func WeightTiers() []WeightTier {
	result := make([]WeightTier, len(weightTiers))
	copy(result, weightTiers)
	return result
}

type Product struct {
	ID          int64
	Name        string
	Category    string
	Description string
	ImageURL    string
	InStock     bool
	Prices      map[WeightTier]decimal.Decimal

	CreatedAt time.Time
}

type TierPrice struct {
	Tier  WeightTier
	Price decimal.Decimal
}

func (p Product) ResolvePrice(tier WeightTier) (decimal.Decimal, error) {
	price, ok := p.Prices[tier]
	if !ok {
		return decimal.Zero, ErrUnavailable
	}

	return price, nil
}

// AvailableTiers lists purchasable tiers in ascending pack size.
func (p Product) AvailableTiers() []TierPrice {
	var result []TierPrice

	for _, tier := range weightTiers {
		if price, ok := p.Prices[tier]; ok {
			result = append(result, TierPrice{Tier: tier, Price: price})
		}
	}

	return result
}

func (p Product) DefaultTier() (WeightTier, bool) {
	tiers := p.AvailableTiers()
	if len(tiers) == 0 {
		return "", false
	}

	return tiers[0].Tier, true
}
