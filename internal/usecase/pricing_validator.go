package usecase

import (
	"context"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/internal/domain/repository"
	"flightbooking-agent/pkg/logger"
)

// PricingValidator re-confirms an offer's price and availability immediately
// before commit, since offers are perishable
type PricingValidator struct {
	pricingRepo repository.PricingRepository
	logger      logger.Logger
}

// NewPricingValidator creates a new pricing validator
func NewPricingValidator(pricingRepo repository.PricingRepository, logger logger.Logger) *PricingValidator {
	return &PricingValidator{
		pricingRepo: pricingRepo,
		logger:      logger,
	}
}

// Validate returns the refreshed offer from the pricing collaborator, or the
// original offer unchanged when the collaborator fails. The fallback is
// non-fatal here: genuine unavailability surfaces at submission instead.
func (v *PricingValidator) Validate(ctx context.Context, offer *entity.Offer) *entity.Offer {
	refreshed, err := v.pricingRepo.ValidatePricing(ctx, offer)
	if err != nil {
		v.logger.Warn("Pricing validation failed, using original offer",
			"offerId", offer.ID,
			"error", err)
		return offer
	}
	if refreshed == nil {
		v.logger.Warn("Pricing validation returned no offer, using original", "offerId", offer.ID)
		return offer
	}

	v.logger.Info("Offer validated with current schedule",
		"offerId", refreshed.ID,
		"total", refreshed.Price.Total)
	return refreshed
}
