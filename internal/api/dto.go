package api

import (
	"time"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/service"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type tierResponse struct {
	Tier  domain.WeightTier `json:"tier"`
	Price string            `json:"price"`
}

type productResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	InStock     bool           `json:"inStock"`
	Tiers       []tierResponse `json:"tiers"`
}

type productDetailResponse struct {
	productResponse
	Related []productResponse `json:"related"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
		Tiers: lo.Map(p.AvailableTiers(), func(tp domain.TierPrice, _ int) tierResponse {
			return tierResponse{Tier: tp.Tier, Price: money(tp.Price)}
		}),
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	return lo.Map(products, func(p domain.Product, _ int) productResponse {
		return toProductResponse(p)
	})
}

type cartLineResponse struct {
	ID        string            `json:"id"`
	ProductID int64             `json:"productId"`
	Name      string            `json:"name"`
	Tier      domain.WeightTier `json:"tier"`
	UnitPrice string            `json:"unitPrice"`
	Quantity  int               `json:"quantity"`
	LineTotal string            `json:"lineTotal"`
	ImageURL  string            `json:"imageUrl,omitempty"`
}

type cartResponse struct {
	Lines       []cartLineResponse `json:"lines"`
	TotalItems  int                `json:"totalItems"`
	Subtotal    string             `json:"subtotal"`
	DeliveryFee string             `json:"deliveryFee"`
	Total       string             `json:"total"`
}

func toCartResponse(s domain.CartSummary) cartResponse {
	return cartResponse{
		Lines: lo.Map(s.Lines, func(l domain.CartLine, _ int) cartLineResponse {
			return cartLineResponse{
				ID:        l.Key.String(),
				ProductID: l.Key.ProductID,
				Name:      l.Name,
				Tier:      l.Key.Tier,
				UnitPrice: money(l.UnitPrice),
				Quantity:  l.Quantity,
				LineTotal: money(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))),
				ImageURL:  l.ImageURL,
			}
		}),
		TotalItems:  s.TotalItems,
		Subtotal:    money(s.Subtotal),
		DeliveryFee: money(s.DeliveryFee),
		Total:       money(s.Total),
	}
}

type orderItemResponse struct {
	ProductID   int64             `json:"productId"`
	ProductName string            `json:"productName"`
	Quantity    int               `json:"quantity"`
	Tier        domain.WeightTier `json:"tier"`
	Price       string            `json:"price"`
}

type orderResponse struct {
	ID           int64                `json:"id"`
	CustomerName string               `json:"customerName"`
	PhoneNumber  string               `json:"phoneNumber"`
	Email        string               `json:"email,omitempty"`
	Address      string               `json:"address"`
	Notes        string               `json:"notes,omitempty"`
	Items        []orderItemResponse  `json:"items"`
	TotalAmount  string               `json:"totalAmount"`
	Status       domain.OrderStatus   `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	Transitions  []domain.OrderStatus `json:"availableTransitions,omitempty"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		PhoneNumber:  o.PhoneNumber,
		Email:        o.Email,
		Address:      o.Address,
		Notes:        o.Notes,
		Items: lo.Map(o.Items, func(i domain.OrderItem, _ int) orderItemResponse {
			return orderItemResponse{
				ProductID:   i.ProductID,
				ProductName: i.ProductName,
				Quantity:    i.Quantity,
				Tier:        i.Tier,
				Price:       money(i.Price),
			}
		}),
		TotalAmount: money(o.TotalAmount),
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

type receiptResponse struct {
	Order       orderResponse `json:"order"`
	Subtotal    string        `json:"subtotal"`
	DeliveryFee string        `json:"deliveryFee"`
	Notified    bool          `json:"notified"`
}

func toReceiptResponse(r service.Receipt) receiptResponse {
	return receiptResponse{
		Order:       toOrderResponse(r.Order),
		Subtotal:    money(r.Subtotal),
		DeliveryFee: money(r.DeliveryFee),
		Notified:    r.NotifyErr == nil,
	}
}

type productSalesResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Revenue   string `json:"revenue"`
}

type statsResponse struct {
	TotalOrders   int                        `json:"totalOrders"`
	PendingOrders int                        `json:"pendingOrders"`
	Revenue       string                     `json:"revenue"`
	Currency      string                     `json:"currency"`
	ByStatus      map[domain.OrderStatus]int `json:"byStatus"`
	TopProducts   []productSalesResponse     `json:"topProducts"`
}

func toStatsResponse(s domain.OrderStats) statsResponse {
	return statsResponse{
		TotalOrders:   s.TotalOrders,
		PendingOrders: s.PendingOrders,
		Revenue:       money(s.Revenue.Amount),
		Currency:      s.Revenue.Currency.String(),
		ByStatus:      s.ByStatus,
		TopProducts: lo.Map(s.TopProducts, func(ps domain.ProductSales, _ int) productSalesResponse {
			return productSalesResponse{
				ProductID: ps.ProductID,
				Name:      ps.Name,
				Quantity:  ps.Quantity,
				Revenue:   money(ps.Revenue.Amount),
			}
		}),
	}
}

type sessionResponse struct {
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		Email:     s.Email,
		IssuedAt:  s.IssuedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
