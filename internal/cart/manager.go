package cart

import (
	"context"
	"sync"

	"github.com/asb-digital/storefront-engine/internal/kvstore"
	"github.com/asb-digital/storefront-engine/internal/observability"
)

// Manager hands out one Aggregator per session, each persisted under its
// own store key.
type Manager struct {
	mu        sync.Mutex
	store     kvstore.Client
	logger    *observability.Logger
	keyPrefix string
	carts     map[string]*Aggregator
}

// NewManager creates a session cart manager. keyPrefix defaults to the
// cart store key plus a separator.
func NewManager(store kvstore.Client, logger *observability.Logger, keyPrefix string) *Manager {
	if keyPrefix == "" {
		keyPrefix = DefaultStoreKey + ":"
	}
	return &Manager{
		store:     store,
		logger:    logger,
		keyPrefix: keyPrefix,
		carts:     make(map[string]*Aggregator),
	}
}

// Cart returns the aggregator for the session, loading persisted state
// on first access.
func (m *Manager) Cart(ctx context.Context, sessionID string) *Aggregator {
	if sessionID == "" {
		sessionID = "anonymous"
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if agg, ok := m.carts[sessionID]; ok {
		return agg
	}
	agg := New(ctx, m.store, m.logger.WithSession(sessionID), m.keyPrefix+sessionID)
	m.carts[sessionID] = agg
	return agg
}
