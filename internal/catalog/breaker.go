package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/go_supply/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

// BreakerStore shields cart reads from a misbehaving catalog. Only the
// lookup paths are wrapped; business errors like a missing product are
// counted as successes so they never trip the breaker.
type BreakerStore struct {
	inner Store
	one   *gobreaker.CircuitBreaker[*domain.Product]
	many  *gobreaker.CircuitBreaker[map[string]*domain.Product]
}

func NewBreakerStore(inner Store) *BreakerStore {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.Requests >= 5 && counts.TotalFailures*2 > counts.Requests
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrProductNotFound)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logrus.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("catalog breaker state change")
			},
		}
	}

	return &BreakerStore{
		inner: inner,
		one:   gobreaker.NewCircuitBreaker[*domain.Product](settings("catalog-get")),
		many:  gobreaker.NewCircuitBreaker[map[string]*domain.Product](settings("catalog-batch")),
	}
}

func (b *BreakerStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return b.one.Execute(func() (*domain.Product, error) {
		return b.inner.GetProduct(ctx, id)
	})
}

func (b *BreakerStore) GetProducts(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	return b.many.Execute(func() (map[string]*domain.Product, error) {
		return b.inner.GetProducts(ctx, ids)
	})
}
