package service_test

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/nutshop/internal/domain"
)

type memOrders struct {
	mu        sync.Mutex
	seq       int64
	orders    map[int64]domain.Order
	insertErr error
	updateErr error
	clock     time.Time
}

func newMemOrders() *memOrders {
	return &memOrders{
		orders: make(map[int64]domain.Order),
		clock:  time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (m *memOrders) InsertOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		return domain.Order{}, m.insertErr
	}

	m.seq++
	m.clock = m.clock.Add(time.Minute)

	order.ID = m.seq
	order.CreatedAt = m.clock
	order.UpdatedAt = m.clock
	order.Items = slices.Clone(order.Items)
	m.orders[order.ID] = order

	return order, nil
}

func (m *memOrders) GetOrder(_ context.Context, orderID int64) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}

	return order, nil
}

func (m *memOrders) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return m.SearchOrders(ctx, domain.OrderFilter{})
}

func (m *memOrders) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []domain.Order
	for _, o := range m.orders {
		if filter.Matches(o) {
			result = append(result, o)
		}
	}

	slices.SortFunc(result, func(a, b domain.Order) int {
		return cmp.Compare(b.ID, a.ID)
	})

	return result, nil
}

func (m *memOrders) UpdateOrderStatus(_ context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateErr != nil {
		return domain.Order{}, m.updateErr
	}

	order, ok := m.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}

	m.clock = m.clock.Add(time.Minute)
	order.Status = status
	order.UpdatedAt = m.clock
	m.orders[orderID] = order

	return order, nil
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type memProducts struct {
	products []domain.Product
}

func (m *memProducts) ListProducts(context.Context) ([]domain.Product, error) {
	result := slices.Clone(m.products)
	slices.SortFunc(result, func(a, b domain.Product) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (m *memProducts) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	all, _ := m.ListProducts(ctx)
	return slices.DeleteFunc(all, func(p domain.Product) bool {
		return p.Category != category
	}), nil
}

func (m *memProducts) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	for _, p := range m.products {
		if p.ID == productID {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (m *memProducts) InsertProduct(_ context.Context, product domain.Product) (int64, error) {
	product.ID = int64(len(m.products) + 1)
	m.products = append(m.products, product)
	return product.ID, nil
}

type memCarts struct {
	mu      sync.Mutex
	carts   map[string][]domain.CartLine
	saveErr error
	saves   int
}

func newMemCarts() *memCarts {
	return &memCarts{carts: make(map[string][]domain.CartLine)}
}

func (m *memCarts) GetCart(_ context.Context, ownerID string) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.carts[ownerID]), nil
}

func (m *memCarts) SaveCart(_ context.Context, ownerID string, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}

	m.carts[ownerID] = slices.Clone(lines)
	return nil
}

func (m *memCarts) DeleteCart(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, ownerID)
	return nil
}

type memAdmins struct {
	admins map[string]domain.Admin
}

func newMemAdmins() *memAdmins {
	return &memAdmins{admins: make(map[string]domain.Admin)}
}

func (m *memAdmins) GetAdminByEmail(_ context.Context, email string) (domain.Admin, error) {
	a, ok := m.admins[strings.ToLower(email)]
	if !ok {
		return domain.Admin{}, domain.ErrAdminNotFound
	}
	return a, nil
}

func (m *memAdmins) InsertAdmin(_ context.Context, email string, hash []byte) (domain.Admin, error) {
	a := domain.Admin{ID: uuid.New(), Email: strings.ToLower(email), PasswordHash: hash}
	m.admins[a.Email] = a
	return a, nil
}

type memSessions struct {
	sessions map[uuid.UUID]domain.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[uuid.UUID]domain.Session)}
}

func (m *memSessions) CreateSession(_ context.Context, s domain.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessions) GetSession(_ context.Context, id uuid.UUID) (domain.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessions) RevokeSession(_ context.Context, id uuid.UUID, at time.Time) error {
	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if s.RevokedAt == nil {
		s.RevokedAt = &at
	}
	m.sessions[id] = s
	return nil
}

type recNotifier struct {
	mu      sync.Mutex
	created []domain.Order
	changed []domain.Order
	err     error
}

func (r *recNotifier) NotifyOrderCreated(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, order)
	return r.err
}

func (r *recNotifier) NotifyStatusChanged(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, order)
	return r.err
}
