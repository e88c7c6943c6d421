package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity bounds the units a single cart line may hold.
const MaxLineQuantity = 99

// LineKey identifies a cart line by product and tier.
type LineKey struct {
	ProductID int64
	Tier      WeightTier
}

func (k LineKey) String() string {
	return fmt.Sprintf("%d-%s", k.ProductID, k.Tier)
}

func ParseLineKey(s string) (LineKey, error) {
	idPart, tierPart, ok := strings.Cut(s, "-")
	if !ok {
		return LineKey{}, fmt.Errorf("line key[%s] is not valid", s)
	}

	productID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return LineKey{}, fmt.Errorf("strconv.ParseInt[%s]: %w", idPart, err)
	}

	tier, err := ToWeightTier(tierPart)
	if err != nil {
		return LineKey{}, fmt.Errorf("ToWeightTier[%s]: %w", tierPart, err)
	}

	return LineKey{ProductID: productID, Tier: tier}, nil
}

type CartLine struct {
	Key       LineKey
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	ImageURL  string
}

func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ledger of a single shopping session. It is not safe for concurrent use.
type Cart struct {
	lines       []CartLine
	totalItems  int
	totalAmount decimal.Decimal
}

func NewCart() *Cart {
	return &Cart{}
}

// RestoreCart rebuilds a cart from stored lines, dropping lines with a non-positive quantity
// and merging duplicate keys. Merged quantities are capped at MaxLineQuantity.
func RestoreCart(lines []CartLine) *Cart {
	c := NewCart()

	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}

		if idx := c.indexOf(l.Key); idx >= 0 {
			c.lines[idx].Quantity = min(c.lines[idx].Quantity+min(l.Quantity, MaxLineQuantity), MaxLineQuantity)
			continue
		}
		l.Quantity = min(l.Quantity, MaxLineQuantity)
		c.lines = append(c.lines, l)
	}

	c.recompute()
	return c
}

// Add puts quantity units of the product tier into the cart.
// A line that already exists keeps the unit price captured when it was first added.
// The merged quantity may not exceed MaxLineQuantity.
func (c *Cart) Add(product Product, tier WeightTier, quantity int) error {
	if !validQuantity(quantity) {
		return ErrInvalidQuantity
	}

	price, err := product.ResolvePrice(tier)
	if err != nil {
		return err
	}

	key := LineKey{ProductID: product.ID, Tier: tier}

	if idx := c.indexOf(key); idx >= 0 {
		if c.lines[idx].Quantity > MaxLineQuantity-quantity {
			return ErrInvalidQuantity
		}
		c.lines[idx].Quantity += quantity
	} else {
		c.lines = append(c.lines, CartLine{
			Key:       key,
			Name:      product.Name,
			UnitPrice: price,
			Quantity:  quantity,
			ImageURL:  product.ImageURL,
		})
	}

	c.recompute()
	return nil
}

// SetQuantity sets an absolute quantity, removing the line when quantity <= 0.
// A quantity above MaxLineQuantity is rejected and the cart is left as is.
func (c *Cart) SetQuantity(key LineKey, quantity int) error {
	if quantity > MaxLineQuantity {
		return ErrInvalidQuantity
	}

	idx := c.indexOf(key)
	if idx < 0 {
		return nil
	}

	if quantity <= 0 {
		c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	} else {
		c.lines[idx].Quantity = quantity
	}

	c.recompute()
	return nil
}

func (c *Cart) Remove(key LineKey) {
	c.lines = lo.Reject(c.lines, func(l CartLine, _ int) bool {
		return l.Key == key
	})

	c.recompute()
}

func (c *Cart) Clear() {
	c.lines = nil
	c.recompute()
}

func (c *Cart) Line(key LineKey) (CartLine, bool) {
	idx := c.indexOf(key)
	if idx < 0 {
		return CartLine{}, false
	}
	return c.lines[idx], true
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []CartLine {
	result := make([]CartLine, len(c.lines))
	copy(result, c.lines)
	return result
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) TotalItems() int {
	return c.totalItems
}

func (c *Cart) TotalAmount() decimal.Decimal {
	return c.totalAmount
}

type CartSummary struct {
	Lines       []CartLine
	TotalItems  int
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

func (c *Cart) Summary(policy DeliveryPolicy) CartSummary {
	fee := policy.Fee(c.totalAmount, c.IsEmpty())

	return CartSummary{
		Lines:       c.Lines(),
		TotalItems:  c.totalItems,
		Subtotal:    c.totalAmount,
		DeliveryFee: fee,
		Total:       c.totalAmount.Add(fee),
	}
}

func validQuantity(quantity int) bool {
	return quantity >= 1 && quantity <= MaxLineQuantity
}

func (c *Cart) indexOf(key LineKey) int {
	_, idx, ok := lo.FindIndexOf(c.lines, func(l CartLine) bool {
		return l.Key == key
	})
	if !ok {
		return -1
	}
	return idx
}

func (c *Cart) recompute() {
	c.totalItems = lo.SumBy(c.lines, func(l CartLine) int {
		return l.Quantity
	})
	c.totalAmount = SubtotalOf(c.lines)
}

func SubtotalOf(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}
