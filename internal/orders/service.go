// Package orders implements the order placement workflow: resolve the drug,
// check stock, gather advisory text and commit the order together with the
// inventory decrement.
package orders

import (
	"context"
	"errors"

	"github.com/Sirius241/Pharmacy-Managment-System/domain"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/advisory"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// InventoryStore resolves drugs and commits placements.
type InventoryStore interface {
	// FindDrugByName returns the drug and its remaining quantity, or
	// domain.ErrNotFound.
	FindDrugByName(ctx context.Context, name string) (domain.Drug, int64, error)
	// CreateOrder inserts the order row and decrements the inventory as one
	// atomic unit. The decrement is conditional on sufficient remaining stock;
	// losing a race surfaces as domain.ErrInsufficientStock with no effects.
	CreateOrder(ctx context.Context, customerID int64, drug domain.Drug, quantity int64) (domain.Order, int64, error)
}

// AdvisorySource provides best-effort label warnings.
type AdvisorySource interface {
	LookupWarnings(ctx context.Context, drugName string) advisory.Result
}

// Placement is the outcome of a successful order.
type Placement struct {
	Order     domain.Order    `json:"order"`
	Remaining int64           `json:"remaining_qty"`
	Advisory  advisory.Result `json:"advisory"`
}

type Service struct {
	store      InventoryStore
	advisories AdvisorySource
}

func NewService(store InventoryStore, advisories AdvisorySource) *Service {
	return &Service{store: store, advisories: advisories}
}

// Place validates the request against available inventory and commits it.
// customerID must already be authenticated by the caller.
func (s *Service) Place(ctx context.Context, customerID int64, drugName string, quantity int64) (*Placement, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	drug, remaining, err := s.store.FindDrugByName(ctx, drugName)
	if err != nil {
		return nil, err
	}
	if quantity > remaining {
		return nil, domain.ErrInsufficientStock
	}

	// Informational only; a degraded result never blocks the order.
	adv := s.advisories.LookupWarnings(ctx, drug.Name)

	order, newRemaining, err := s.store.CreateOrder(ctx, customerID, drug, quantity)
	if err != nil {
		return nil, err
	}

	return &Placement{Order: order, Remaining: newRemaining, Advisory: adv}, nil
}
