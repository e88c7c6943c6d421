package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, customer_name, phone_number, email, address, notes, total_amount, status, created_at, updated_at`

type orderRepository struct {
	dbtx DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{dbtx: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{dbtx: tx}
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Items) == 0 {
		return domain.Order{}, errors.New("no items in order")
	}

	status := order.Status
	if status == "" {
		status = domain.OrderStatusReceived
	}

	inserted, err := withTx(ctx, r.dbtx, func(q DBTX) (domain.Order, error) {
		row := q.QueryRow(ctx, `
			INSERT INTO orders (customer_name, phone_number, email, address, notes, total_amount, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+orderColumns,
			order.CustomerName, order.PhoneNumber, order.Email, order.Address, order.Notes, order.TotalAmount, string(status))

		o, err := scanOrder(row)
		if err != nil {
			return o, fmt.Errorf("q.InsertOrder: %w", err)
		}

		batch := &pgx.Batch{}
		for i, item := range order.Items {
			batch.Queue(`
				INSERT INTO order_items (order_id, position, product_id, product_name, quantity, weight, price)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				o.ID, i, item.ProductID, item.ProductName, item.Quantity, string(item.Tier), item.Price)
		}

		if err := sendBatch(ctx, q, batch); err != nil {
			return o, fmt.Errorf("q.InsertOrderItems: %w", err)
		}

		o.Items = order.Items
		return o, nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return inserted, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	order, err := withTx(ctx, r.dbtx, func(q DBTX) (domain.Order, error) {
		return getOrder(ctx, q, orderID)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return r.SearchOrders(ctx, domain.OrderFilter{})
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	statuses := lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) string {
		return string(s)
	})

	orders, err := withTx(ctx, r.dbtx, func(q DBTX) ([]domain.Order, error) {
		rows, err := q.Query(ctx, `
			SELECT `+orderColumns+`
			FROM orders
			WHERE ($1::text[] IS NULL OR status = ANY($1))
			  AND ($2::text = ''
			    OR customer_name ILIKE '%' || $2 || '%'
			    OR phone_number LIKE '%' || $2 || '%'
			    OR id::text LIKE '%' || $2 || '%')
			ORDER BY created_at DESC, id DESC`,
			nilSliceIfEmpty(statuses), filter.SearchTerm())
		if err != nil {
			return nil, fmt.Errorf("q.SearchOrders: %w", err)
		}

		orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
			return scanOrder(row)
		})
		if err != nil {
			return nil, fmt.Errorf("pgx.CollectRows: %w", err)
		}

		if err := attachItems(ctx, q, orders); err != nil {
			return nil, fmt.Errorf("attachItems: %w", err)
		}

		return orders, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error) {
	if status == "" {
		return domain.Order{}, errors.New("status is empty")
	}

	order, err := withTx(ctx, r.dbtx, func(q DBTX) (domain.Order, error) {
		cmdTag, err := q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, orderID, string(status))
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.UpdateOrderStatus: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return domain.Order{}, fmt.Errorf("q.UpdateOrderStatus: %w", domain.ErrNotFound)
		}

		return getOrder(ctx, q, orderID)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func getOrder(ctx context.Context, q DBTX, orderID int64) (domain.Order, error) {
	row := q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order, fmt.Errorf("q.GetOrder: %w", domain.ErrNotFound)
		}
		return order, fmt.Errorf("q.GetOrder: %w", err)
	}

	orders := []domain.Order{order}
	if err := attachItems(ctx, q, orders); err != nil {
		return order, fmt.Errorf("attachItems: %w", err)
	}

	return orders[0], nil
}

// attachItems loads the items of all given orders in one query.
func attachItems(ctx context.Context, q DBTX, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := lo.Map(orders, func(o domain.Order, _ int) int64 {
		return o.ID
	})

	rows, err := q.Query(ctx, `
		SELECT order_id, product_id, product_name, quantity, weight, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("q.GetOrderItems: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[int64][]domain.OrderItem, len(orders))

	for rows.Next() {
		var (
			orderID int64
			weight  string
			item    domain.OrderItem
		)

		if err := rows.Scan(&orderID, &item.ProductID, &item.ProductName, &item.Quantity, &weight, &item.Price); err != nil {
			return fmt.Errorf("rows.Scan: %w", err)
		}

		item.Tier, err = domain.ToWeightTier(weight)
		if err != nil {
			return fmt.Errorf("domain.ToWeightTier[%s]: %w", weight, err)
		}

		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows.Err: %w", err)
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}

	return nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o      domain.Order
		total  decimal.Decimal
		status string
	)

	if err := row.Scan(&o.ID, &o.CustomerName, &o.PhoneNumber, &o.Email, &o.Address, &o.Notes,
		&total, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return o, err
	}

	parsed, err := domain.ToOrderStatus(status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}

	o.TotalAmount = total
	o.Status = parsed

	return o, nil
}

func sendBatch(ctx context.Context, q DBTX, batch *pgx.Batch) error {
	tx, ok := q.(pgx.Tx)
	if !ok {
		return fmt.Errorf("batch requires a transaction, got %T", q)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("br.Close: %w", err)
	}

	return nil
}
