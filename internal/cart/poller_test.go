package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fjod/go_supply/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerHandleEvent_ClearsCartAndCache(t *testing.T) {
	repo := newMockRepository()
	repo.carts["session-1"] = &domain.Cart{SessionID: "session-1", Version: 1}
	cache := &mockCache{cart: &domain.Cart{SessionID: "session-1"}}

	p := &Poller{repo: repo, cache: cache}

	payload, err := json.Marshal(domain.CheckoutCompletedEvent{
		CheckoutID: "chk-1",
		SessionID:  "session-1",
	})
	require.NoError(t, err)

	p.handleEvent(context.Background(), payload)

	_, err = repo.GetCart(context.Background(), "session-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
	_, err = cache.Get(context.Background(), "session-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestPollerHandleEvent_MissingCartIsFine(t *testing.T) {
	repo := newMockRepository()
	cache := &mockCache{}
	p := &Poller{repo: repo, cache: cache}

	payload, _ := json.Marshal(domain.CheckoutCompletedEvent{SessionID: "ghost"})
	p.handleEvent(context.Background(), payload)
}

func TestPollerHandleEvent_BadPayloadIgnored(t *testing.T) {
	repo := newMockRepository()
	repo.carts["session-1"] = &domain.Cart{SessionID: "session-1", Version: 1}
	p := &Poller{repo: repo, cache: &mockCache{}}

	p.handleEvent(context.Background(), []byte("{broken"))
	p.handleEvent(context.Background(), []byte(`{"checkout_id":"chk-1"}`))

	// Cart untouched by malformed or sessionless events.
	_, err := repo.GetCart(context.Background(), "session-1")
	assert.NoError(t, err)
}
