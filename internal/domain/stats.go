package domain

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

const topProductsLimit = 5

type ProductSales struct {
	ProductID int64
	Name      string
	Quantity  int
	Revenue   Money
}

type OrderStats struct {
	TotalOrders   int
	PendingOrders int
	Revenue       Money
	ByStatus      map[OrderStatus]int
	TopProducts   []ProductSales
}

// ComputeStats aggregates dashboard numbers over the given orders.
func ComputeStats(orders []Order) OrderStats {
	stats := OrderStats{
		TotalOrders: len(orders),
		Revenue:     INR(decimal.Zero),
		ByStatus:    make(map[OrderStatus]int, len(orderPipeline)),
	}

	for _, status := range orderPipeline {
		stats.ByStatus[status] = 0
	}

	sales := make(map[int64]*ProductSales)
	var seen []int64

	for _, o := range orders {
		stats.ByStatus[o.Status]++
		if !o.Status.IsTerminal() {
			stats.PendingOrders++
		}
		stats.Revenue.Amount = stats.Revenue.Amount.Add(o.TotalAmount)

		for _, item := range o.Items {
			ps, ok := sales[item.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: item.ProductID, Name: item.ProductName, Revenue: INR(decimal.Zero)}
				sales[item.ProductID] = ps
				seen = append(seen, item.ProductID)
			}
			ps.Quantity += item.Quantity
			ps.Revenue.Amount = ps.Revenue.Amount.Add(item.Total())
		}
	}

	top := make([]ProductSales, 0, len(seen))
	for _, id := range seen {
		top = append(top, *sales[id])
	}

	slices.SortStableFunc(top, func(a, b ProductSales) int {
		return cmp.Compare(b.Quantity, a.Quantity)
	})

	if len(top) > topProductsLimit {
		top = top[:topProductsLimit]
	}
	stats.TopProducts = top

	return stats
}
