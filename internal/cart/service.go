package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_supply/internal/catalog"
	"github.com/fjod/go_supply/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// saveAttempts bounds the optimistic-concurrency retry loop. Conflicts only
// happen when two requests race on the same session, so one or two retries
// are enough in practice.
const saveAttempts = 3

// ProductResolver is the slice of the catalog the cart engine consumes.
// Consumers define this interface, not the catalog implementation.
type ProductResolver interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProducts(ctx context.Context, ids []string) (map[string]*domain.Product, error)
}

type Service struct {
	repo    Repository
	cache   Cache
	catalog ProductResolver
	sfg     singleflight.Group // Prevents cache stampede
}

func NewService(repo Repository, cache Cache, catalog ProductResolver) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		catalog: catalog,
	}
}

// GetCart returns the cart for the session, or an empty cart if none exists.
// Absence is a valid zero state, never an error.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		cached, errCache := s.cache.Get(ctx, sessionID)
		if errCache == nil {
			return cached, nil
		}
		if !errors.Is(errCache, ErrCacheMiss) {
			logrus.WithError(errCache).Warn("cache get error") // log cache error but continue
		}

		c, errGet := s.repo.GetCart(ctx, sessionID)
		if errGet != nil {
			if errors.Is(errGet, ErrCartNotFound) {
				return emptyCart(sessionID), nil
			}
			return nil, errGet
		}

		if errSet := s.cache.Set(ctx, sessionID, c); errSet != nil {
			logrus.WithError(errSet).Warn("cache set error")
		}

		return c, nil
	})

	if err != nil {
		return nil, err
	}

	// Coalesced callers all receive the same cart pointer, so each caller
	// resolves display data on its own copy.
	c := cloneCart(v.(*domain.Cart))
	if err := s.resolveProducts(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem merges quantity into the session's line for the product, creating
// the cart and the line as needed. The line total is recomputed in full from
// the current catalog price, and the cart aggregates are re-summed over all
// lines before the cart is saved.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity float64) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.resolveActiveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var c *domain.Cart
	err = s.withRetry(func() error {
		var errGet error
		c, errGet = s.repo.GetCart(ctx, sessionID)
		if errGet != nil {
			if !errors.Is(errGet, ErrCartNotFound) {
				return errGet
			}
			c = emptyCart(sessionID)
		}

		if i := c.FindItem(productID); i >= 0 {
			item := &c.Items[i]
			item.Quantity += quantity
			item.TotalPrice = item.Quantity * product.Price
		} else {
			c.Items = append(c.Items, domain.CartItem{
				ProductID:  productID,
				Quantity:   quantity,
				TotalPrice: quantity * product.Price,
				AddedAt:    time.Now(),
			})
		}

		c.Recalculate()
		return s.repo.SaveCart(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(sessionID)
	if err := s.resolveProducts(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateItem replaces the line's quantity. The cart and the line must both
// exist. Quantity is deliberately not checked against stock here; checkout
// is the sole gatekeeper for stock.
func (s *Service) UpdateItem(ctx context.Context, sessionID, productID string, quantity float64) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.resolveActiveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var c *domain.Cart
	err = s.withRetry(func() error {
		var errGet error
		c, errGet = s.repo.GetCart(ctx, sessionID)
		if errGet != nil {
			return errGet
		}

		i := c.FindItem(productID)
		if i < 0 {
			return ErrItemNotFound
		}

		item := &c.Items[i]
		item.Quantity = quantity
		item.TotalPrice = quantity * product.Price

		c.Recalculate()
		return s.repo.SaveCart(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(sessionID)
	if err := s.resolveProducts(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops the line if present. Removing an absent line, or from an
// absent cart, is not an error.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	var c *domain.Cart
	err := s.withRetry(func() error {
		var errGet error
		c, errGet = s.repo.GetCart(ctx, sessionID)
		if errGet != nil {
			if errors.Is(errGet, ErrCartNotFound) {
				c = emptyCart(sessionID)
				return nil
			}
			return errGet
		}

		i := c.FindItem(productID)
		if i < 0 {
			return nil
		}

		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		c.Recalculate()
		return s.repo.SaveCart(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(sessionID)
	if err := s.resolveProducts(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ClearCart deletes the whole cart record. Idempotent.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	err := s.repo.DeleteCart(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrCartNotFound) {
		return err
	}

	s.invalidateCache(sessionID)
	return nil
}

func (s *Service) withRetry(mutate func() error) error {
	var err error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		err = mutate()
		if !errors.Is(err, ErrVersionConflict) {
			return err
		}
	}
	return fmt.Errorf("cart save retries exhausted: %w", err)
}

func (s *Service) resolveActiveProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, catalog.ErrProductNotFound
	}
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, catalog.ErrProductNotFound
	}
	return product, nil
}

// resolveProducts attaches display summaries to every line, the equivalent
// of populating items.product on reads.
func (s *Service) resolveProducts(ctx context.Context, c *domain.Cart) error {
	if len(c.Items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.catalog.GetProducts(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve cart products: %w", err)
	}

	for i := range c.Items {
		if p, ok := products[c.Items[i].ProductID]; ok {
			c.Items[i].Product = p.Summary()
		}
	}
	return nil
}

func (s *Service) invalidateCache(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		logrus.WithError(err).Warn("cache invalidate error")
	}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	clone := *c
	clone.Items = append([]domain.CartItem(nil), c.Items...)
	return &clone
}

func emptyCart(sessionID string) *domain.Cart {
	now := time.Now()
	return &domain.Cart{
		SessionID: sessionID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
