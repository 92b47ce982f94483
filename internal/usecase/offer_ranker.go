package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/pkg/logger"
)

// OfferRanker normalizes raw offers into comparable, price-ordered options
type OfferRanker struct {
	logger logger.Logger
}

// NewOfferRanker creates a new offer ranker
func NewOfferRanker(logger logger.Logger) *OfferRanker {
	return &OfferRanker{logger: logger}
}

// Rank produces one RankedOption per normalizable offer, sorted ascending by
// price with ties keeping search order. Offers missing itinerary or segment
// data are dropped with a warning, never fatally. A budget of zero means no
// budget was given.
func (r *OfferRanker) Rank(offers []*entity.Offer, budget float64) []entity.RankedOption {
	ranked := make([]entity.RankedOption, 0, len(offers))

	for _, offer := range offers {
		option, err := r.normalize(offer, budget)
		if err != nil {
			r.logger.Warn("Dropping offer from ranking", "offerId", offer.ID, "error", err)
			continue
		}
		ranked = append(ranked, option)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price < ranked[j].Price
	})

	return ranked
}

// normalize derives the comparable view of one offer. Stops count only the
// first itinerary; return segments are not counted.
func (r *OfferRanker) normalize(offer *entity.Offer, budget float64) (entity.RankedOption, error) {
	if len(offer.Itineraries) == 0 {
		return entity.RankedOption{}, errors.New("no itinerary data")
	}
	outbound := offer.Itineraries[0]
	if len(outbound.Segments) == 0 {
		return entity.RankedOption{}, errors.New("no segment data")
	}

	price := parsePrice(offer.Price.Total)
	stops := len(outbound.Segments) - 1
	first := outbound.Segments[0]
	last := outbound.Segments[len(outbound.Segments)-1]

	return entity.RankedOption{
		Offer:          offer,
		Price:          price,
		Currency:       offer.Price.Currency,
		Airline:        first.CarrierCode,
		DepartureTime:  first.Departure.At,
		ArrivalTime:    last.Arrival.At,
		Duration:       outbound.Duration,
		Stops:          stops,
		Recommendation: recommend(stops, price, budget),
	}, nil
}

// parsePrice reads a decimal total. A missing or unparsable total ranks as
// zero; the quirk is inherited from the pricing feed and left uncorrected.
func parsePrice(total string) float64 {
	price, err := strconv.ParseFloat(total, 64)
	if err != nil {
		return 0
	}
	return price
}

// recommend composes the stop-count label and, when a budget is set, a
// budget-relative qualifier. Pure and deterministic.
func recommend(stops int, price, budget float64) string {
	var parts []string

	switch stops {
	case 0:
		parts = append(parts, "Direct flight")
	case 1:
		parts = append(parts, "1 stop")
	default:
		parts = append(parts, fmt.Sprintf("%d stops", stops))
	}

	if budget > 0 {
		switch {
		case price <= budget*0.8:
			parts = append(parts, "Great value")
		case price <= budget:
			parts = append(parts, "Within budget")
		default:
			parts = append(parts, "Over budget")
		}
	}

	return strings.Join(parts, " • ")
}
