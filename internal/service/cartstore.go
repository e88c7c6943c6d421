package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
)

var ErrNoSession = errors.New("cart session key is empty")

// CartStore keeps one ledger per session key. Operations on one key are serialized,
// different keys never share state. A ledger is dropped from memory as soon as it is
// empty and unused, and by SweepIdle once it has not been touched for a while.
type CartStore struct {
	catalog   *Catalog
	checkout  *Checkout
	snapshots port.CartRepository
	policy    domain.DeliveryPolicy
	now       func() time.Time

	mu    sync.Mutex
	carts map[string]*sessionCart
}

type sessionCart struct {
	mu     sync.Mutex
	cart   *domain.Cart
	loaded bool

	// guarded by CartStore.mu
	refs     int
	lastUsed time.Time
}

// NewCartStore builds a store; snapshots may be nil to keep carts in memory only.
func NewCartStore(catalog *Catalog, checkout *Checkout, snapshots port.CartRepository, policy domain.DeliveryPolicy) (*CartStore, error) {
	if catalog == nil {
		return nil, errors.New("catalog is nil")
	}
	if checkout == nil {
		return nil, errors.New("checkout is nil")
	}

	return &CartStore{
		catalog:   catalog,
		checkout:  checkout,
		snapshots: snapshots,
		policy:    policy,
		now:       time.Now,
		carts:     make(map[string]*sessionCart),
	}, nil
}

func (s *CartStore) View(ctx context.Context, key string) (domain.CartSummary, error) {
	return s.withCart(ctx, key, false, func(*domain.Cart) error {
		return nil
	})
}

// Add resolves the product through the catalog; an empty tier selects the product's smallest pack.
func (s *CartStore) Add(ctx context.Context, key string, productID int64, tier domain.WeightTier, quantity int) (domain.CartSummary, error) {
	if quantity < 1 || quantity > domain.MaxLineQuantity {
		return domain.CartSummary{}, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("catalog.Get: %w", err)
	}

	if !product.InStock {
		return domain.CartSummary{}, domain.ErrUnavailable
	}

	if tier == "" {
		defaultTier, ok := product.DefaultTier()
		if !ok {
			return domain.CartSummary{}, domain.ErrUnavailable
		}
		tier = defaultTier
	}

	return s.withCart(ctx, key, true, func(c *domain.Cart) error {
		return c.Add(product, tier, quantity)
	})
}

func (s *CartStore) SetQuantity(ctx context.Context, key string, line domain.LineKey, quantity int) (domain.CartSummary, error) {
	return s.withCart(ctx, key, true, func(c *domain.Cart) error {
		return c.SetQuantity(line, quantity)
	})
}

func (s *CartStore) Remove(ctx context.Context, key string, line domain.LineKey) (domain.CartSummary, error) {
	return s.withCart(ctx, key, true, func(c *domain.Cart) error {
		c.Remove(line)
		return nil
	})
}

func (s *CartStore) Clear(ctx context.Context, key string) (domain.CartSummary, error) {
	return s.withCart(ctx, key, true, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
}

// Checkout submits the session's cart while holding its lock, so no mutation can slip in
// between reading the lines and clearing them. The cart is cleared only on success.
func (s *CartStore) Checkout(ctx context.Context, key string, info domain.ShippingInfo) (Receipt, error) {
	var receipt Receipt

	_, err := s.withCart(ctx, key, false, func(c *domain.Cart) error {
		var err error

		receipt, err = s.checkout.Submit(ctx, c.Lines(), info)
		if err != nil {
			return fmt.Errorf("checkout.Submit: %w", err)
		}

		if receipt.ClearCart {
			c.Clear()
			s.persist(ctx, key, c)
		}

		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	return receipt, nil
}

func (s *CartStore) withCart(ctx context.Context, key string, mutates bool, fn func(c *domain.Cart) error) (domain.CartSummary, error) {
	if key == "" {
		return domain.CartSummary{}, ErrNoSession
	}

	sc := s.acquire(key)
	defer s.release(key, sc)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if err := s.load(ctx, key, sc); err != nil {
		return domain.CartSummary{}, fmt.Errorf("s.load: %w", err)
	}

	if err := fn(sc.cart); err != nil {
		return domain.CartSummary{}, err
	}

	if mutates {
		s.persist(ctx, key, sc.cart)
	}

	return sc.cart.Summary(s.policy), nil
}

func (s *CartStore) acquire(key string) *sessionCart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.carts[key]
	if !ok {
		sc = &sessionCart{}
		s.carts[key] = sc
	}
	sc.refs++

	return sc
}

// release must run after sc.mu is unlocked. With no other holders nobody can touch
// the ledger, so it is safe to inspect it here.
func (s *CartStore) release(key string, sc *sessionCart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc.refs--
	sc.lastUsed = s.now()

	if sc.refs == 0 && (sc.cart == nil || sc.cart.IsEmpty()) {
		delete(s.carts, key)
	}
}

// SweepIdle drops ledgers nobody used for at least idle and reports how many were dropped.
// Carts with snapshots are restored on the next request; without snapshots they are gone.
func (s *CartStore) SweepIdle(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	dropped := 0

	for key, sc := range s.carts {
		if sc.refs == 0 && !sc.lastUsed.After(cutoff) {
			delete(s.carts, key)
			dropped++
		}
	}

	return dropped
}

// RunSweeper calls SweepIdle every interval until ctx is done.
func (s *CartStore) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.SweepIdle(idle); n > 0 {
				slog.Debug("idle carts dropped", "method", "CartStore.RunSweeper", "count", n)
			}
		}
	}
}

// Sessions reports how many ledgers are held in memory.
func (s *CartStore) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.carts)
}

func (s *CartStore) load(ctx context.Context, key string, sc *sessionCart) error {
	if sc.loaded {
		return nil
	}

	if s.snapshots == nil {
		sc.cart = domain.NewCart()
		sc.loaded = true
		return nil
	}

	lines, err := s.snapshots.GetCart(ctx, key)
	if err != nil {
		return fmt.Errorf("snapshots.GetCart: %w", err)
	}

	sc.cart = domain.RestoreCart(lines)
	sc.loaded = true

	return nil
}

// persist writes the snapshot through; the in-memory ledger stays authoritative when it fails.
func (s *CartStore) persist(ctx context.Context, key string, cart *domain.Cart) {
	if s.snapshots == nil {
		return
	}

	var err error
	if cart.IsEmpty() {
		err = s.snapshots.DeleteCart(ctx, key)
	} else {
		err = s.snapshots.SaveCart(ctx, key, cart.Lines())
	}

	if err != nil {
		slog.Warn("cart snapshot not saved",
			"method", "CartStore.persist",
			"session", key,
			"error", err)
	}
}
