package usecase

import (
	"strconv"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/pkg/logger"
)

// TravelerBinder rewrites traveler slot identifiers to the identifiers an
// offer's per-traveler pricing expects
type TravelerBinder struct {
	logger logger.Logger
}

// NewTravelerBinder creates a new traveler binder
func NewTravelerBinder(logger logger.Logger) *TravelerBinder {
	return &TravelerBinder{logger: logger}
}

// BindTravelers assigns each pricing entry's expected slot identifier to the
// traveler at the same position. Pricing entries beyond the traveler list
// are left unbound with a warning; the shortfall then fails at submission,
// not here. With no pricing entries at all, travelers pass through with
// their collection-order identifiers unchanged.
func (b *TravelerBinder) BindTravelers(offer *entity.Offer, travelers []entity.Traveler) []entity.BoundTraveler {
	pricings := offer.TravelerPricings

	if len(pricings) == 0 {
		b.logger.Warn("Offer has no traveler pricings, passing travelers through", "offerId", offer.ID)
		return append([]entity.BoundTraveler(nil), travelers...)
	}

	bound := make([]entity.BoundTraveler, 0, len(pricings))
	for i, pricing := range pricings {
		expected := pricing.TravelerID
		if expected == "" {
			expected = strconv.Itoa(i + 1)
		}

		if i >= len(travelers) {
			b.logger.Warn("Not enough travelers for pricing slot",
				"offerId", offer.ID,
				"travelerId", expected)
			continue
		}

		traveler := travelers[i]
		traveler.ID = expected
		bound = append(bound, traveler)
	}

	return bound
}
