package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// StoreCurrency is the only currency the shop sells in.
var StoreCurrency = currency.INR

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func INR(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: StoreCurrency}
}

func (m Money) String() string {
	return m.Currency.String() + " " + m.Amount.StringFixed(2)
}
