package repository

import (
	"context"

	"flightbooking-agent/internal/domain/entity"
)

// PricingRepository defines the interface for offer price revalidation
type PricingRepository interface {
	// ValidatePricing re-confirms an offer with the pricing engine and
	// returns the refreshed offer. The refreshed offer may carry a new
	// price and new traveler pricing slot identifiers.
	ValidatePricing(ctx context.Context, offer *entity.Offer) (*entity.Offer, error)
}
