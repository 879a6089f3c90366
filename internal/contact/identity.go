// Package contact remembers the last-used contact identity so inquiry
// forms can be prefilled across sessions.
package contact

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/asb-digital/storefront-engine/internal/kvstore"
	"github.com/asb-digital/storefront-engine/internal/observability"
)

// StoreKey is the key the contact identity is persisted under, distinct
// from the cart's key.
const StoreKey = "customer-info"

// Identity is the remembered contact information. The inquiry message is
// deliberately not part of it.
type Identity struct {
	InquiryType string `json:"inquiryType"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// Store persists and recalls the contact identity.
type Store struct {
	store  kvstore.Client
	logger *observability.Logger
}

// NewStore creates a contact identity store.
func NewStore(store kvstore.Client, logger *observability.Logger) *Store {
	return &Store{store: store, logger: logger}
}

// Remember persists the identity.
func (s *Store) Remember(ctx context.Context, id Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshal contact identity: %w", err)
	}
	if err := s.store.Set(ctx, StoreKey, data, 0); err != nil {
		return fmt.Errorf("persist contact identity: %w", err)
	}
	return nil
}

// Recall returns the remembered identity, or a zero value when nothing
// usable is stored. Corrupt entries are logged and treated as absent.
func (s *Store) Recall(ctx context.Context) Identity {
	data, err := s.store.Get(ctx, StoreKey)
	if err != nil {
		if err != kvstore.ErrNotFound {
			s.logger.Warn().Err(err).Msg("Contact identity unreadable")
		}
		return Identity{}
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		s.logger.Warn().Err(err).Msg("Contact identity corrupt, ignoring")
		return Identity{}
	}
	return id
}
