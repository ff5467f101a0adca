package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fjod/go_supply/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Poller consumes checkout-completed events and clears the corresponding
// session's cart, so a purchased cart does not linger.
type Poller struct {
	repo   Repository
	cache  Cache
	reader *kafka.Reader
}

func NewPoller(repo Repository, cache Cache, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "checkout-completed",
		GroupID:  "go-supply-cart-clearer",
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{repo: repo, cache: cache, reader: reader}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.consumeAndClear(ctx)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		logrus.WithError(err).Warn("error closing checkout event reader")
	}
}

func (p *Poller) consumeAndClear(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logrus.WithError(err).Warn("error reading checkout event")
		}
		return
	}

	p.handleEvent(ctx, m.Value)
}

func (p *Poller) handleEvent(ctx context.Context, payload []byte) {
	var event domain.CheckoutCompletedEvent
	if errUnmarshal := json.Unmarshal(payload, &event); errUnmarshal != nil {
		logrus.WithError(errUnmarshal).Warn("error parsing checkout event")
		return
	}
	if event.SessionID == "" {
		logrus.Warn("checkout event without session id")
		return
	}

	errDelete := p.repo.DeleteCart(ctx, event.SessionID)
	if errDelete != nil && !errors.Is(errDelete, ErrCartNotFound) {
		logrus.WithError(errDelete).WithField("session_id", event.SessionID).Warn("failed to delete cart")
	}

	if errCache := p.cache.Delete(ctx, event.SessionID); errCache != nil {
		logrus.WithError(errCache).WithField("session_id", event.SessionID).Warn("failed to delete cached cart")
	}
}
