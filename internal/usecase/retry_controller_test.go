package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/pkg/logger"
	"flightbooking-agent/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(search *fakeSearchRepo, pricing *fakePricingRepo, booking *fakeBookingRepo, cfg RetryControllerConfig) *RetryController {
	log := logger.NewLogger()
	m := metrics.NewMetricsWith(prometheus.NewRegistry(), "test")
	return NewRetryController(
		search,
		NewOfferRanker(log),
		NewTravelerBinder(log),
		NewPricingValidator(pricing, log),
		NewBookingSubmitter(booking, log),
		m, log, cfg,
	)
}

// timedOffer builds a single-segment offer with one traveler pricing slot so
// the bind and submit count checks pass.
func timedOffer(id, total, carrier, departAt string) *entity.Offer {
	return &entity.Offer{
		ID:    id,
		Price: entity.Price{Total: total, Currency: "USD"},
		Itineraries: []entity.Itinerary{{
			Duration: "PT2H5M",
			Segments: []entity.Segment{{
				CarrierCode: carrier,
				Departure:   entity.FlightPoint{IATACode: "KUL", At: departAt},
				Arrival:     entity.FlightPoint{IATACode: "BKK", At: "2026-03-05T23:00:00"},
			}},
		}},
		TravelerPricings: []entity.TravelerPricing{{TravelerID: "1"}},
	}
}

func testAttempt(selected *entity.Offer) *entity.BookingAttempt {
	option := entity.RankedOption{
		Offer:         selected,
		Airline:       selected.Itineraries[0].Segments[0].CarrierCode,
		DepartureTime: selected.Itineraries[0].Segments[0].Departure.At,
	}
	return entity.NewBookingAttempt(
		entity.SearchParams{Origin: "KUL", Destination: "BKK", DepartureDate: "2026-03-05", Adults: 1},
		&option,
		[]entity.Traveler{testTraveler("1", "ANNA")},
		&entity.Contact{},
	)
}

func segmentSellError() *entity.BookingError {
	return &entity.BookingError{Kind: entity.FailureSegmentSell, Status: 400, Code: 34651, Detail: "segment sell failure"}
}

func TestSubmitWithRetryFirstAttemptSucceeds(t *testing.T) {
	search := &fakeSearchRepo{}
	booking := &fakeBookingRepo{queue: []submitResult{
		{confirmation: &entity.BookingConfirmation{ID: "order-1"}},
	}}
	controller := newTestController(search, &fakePricingRepo{}, booking, RetryControllerConfig{MaxRetries: 2})

	attempt := testAttempt(timedOffer("a", "100.00", "QR", "2026-03-05T09:30:00"))
	confirmation, err := controller.SubmitWithRetry(context.Background(), attempt)

	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.Equal(t, "order-1", confirmation.ID)
	assert.Equal(t, 0, attempt.Attempts)
	assert.Equal(t, 0, search.calls)
	assert.Same(t, confirmation, attempt.Confirmation)
}

func TestSubmitWithRetryResyncsOnceThenSucceeds(t *testing.T) {
	search := &fakeSearchRepo{offers: []*entity.Offer{
		timedOffer("fresh", "110.00", "QR", "2026-03-05T10:00:00"),
	}}
	booking := &fakeBookingRepo{queue: []submitResult{
		{err: segmentSellError()},
		{confirmation: &entity.BookingConfirmation{ID: "order-2"}},
	}}
	pricing := &fakePricingRepo{}
	controller := newTestController(search, pricing, booking, RetryControllerConfig{MaxRetries: 2})

	attempt := testAttempt(timedOffer("stale", "100.00", "QR", "2026-03-05T09:30:00"))
	confirmation, err := controller.SubmitWithRetry(context.Background(), attempt)

	require.NoError(t, err)
	assert.Equal(t, "order-2", confirmation.ID)
	assert.Equal(t, 1, attempt.Attempts)
	assert.Equal(t, 1, search.calls)
	assert.Equal(t, 2, booking.calls)
	assert.Equal(t, "fresh", attempt.Selected.Offer.ID)
	// Every attempt goes through the full pipeline, including re-pricing.
	assert.Equal(t, 2, pricing.calls)
}

func TestSubmitWithRetryNonRecoverableFailsImmediately(t *testing.T) {
	search := &fakeSearchRepo{offers: []*entity.Offer{
		timedOffer("fresh", "110.00", "QR", "2026-03-05T10:00:00"),
	}}
	requestErr := &entity.BookingError{Kind: entity.FailureRequest, Status: 401, Detail: "invalid credentials"}
	booking := &fakeBookingRepo{queue: []submitResult{{err: requestErr}}}
	controller := newTestController(search, &fakePricingRepo{}, booking, RetryControllerConfig{MaxRetries: 2})

	attempt := testAttempt(timedOffer("a", "100.00", "QR", "2026-03-05T09:30:00"))
	_, err := controller.SubmitWithRetry(context.Background(), attempt)

	require.Error(t, err)
	var bookingErr *entity.BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Same(t, requestErr, bookingErr)
	assert.Equal(t, 0, search.calls)
	assert.Equal(t, 1, booking.calls)
}

func TestSubmitWithRetryExhaustsRetries(t *testing.T) {
	search := &fakeSearchRepo{offers: []*entity.Offer{
		timedOffer("fresh", "110.00", "QR", "2026-03-05T10:00:00"),
	}}
	booking := &fakeBookingRepo{queue: []submitResult{{err: segmentSellError()}}}
	controller := newTestController(search, &fakePricingRepo{}, booking, RetryControllerConfig{MaxRetries: 2})

	attempt := testAttempt(timedOffer("a", "100.00", "QR", "2026-03-05T09:30:00"))
	_, err := controller.SubmitWithRetry(context.Background(), attempt)

	require.Error(t, err)
	var resyncErr *entity.ResyncError
	require.ErrorAs(t, err, &resyncErr)
	assert.Equal(t, entity.ResyncRetriesExhausted, resyncErr.Reason)
	assert.Equal(t, 2, resyncErr.Attempts)
	assert.Contains(t, resyncErr.Error(), "max retries")

	// Underlying cause stays reachable for callers that care.
	var cause *entity.BookingError
	require.ErrorAs(t, errors.Unwrap(resyncErr), &cause)
	assert.Equal(t, entity.FailureSegmentSell, cause.Kind)

	// Initial attempt plus one per resync cycle.
	assert.Equal(t, 3, booking.calls)
	assert.Equal(t, 2, search.calls)
}

func TestSubmitWithRetryFreshSearchFails(t *testing.T) {
	searchFailure := errors.New("search endpoint down")
	search := &fakeSearchRepo{err: searchFailure}
	booking := &fakeBookingRepo{queue: []submitResult{{err: segmentSellError()}}}
	controller := newTestController(search, &fakePricingRepo{}, booking, RetryControllerConfig{MaxRetries: 2})

	attempt := testAttempt(timedOffer("a", "100.00", "QR", "2026-03-05T09:30:00"))
	_, err := controller.SubmitWithRetry(context.Background(), attempt)

	var resyncErr *entity.ResyncError
	require.ErrorAs(t, err, &resyncErr)
	assert.Equal(t, entity.ResyncSearchFailed, resyncErr.Reason)
	assert.ErrorIs(t, err, searchFailure)
}

func TestSubmitWithRetryNoFreshOffers(t *testing.T) {
	search := &fakeSearchRepo{}
	booking := &fakeBookingRepo{queue: []submitResult{{err: segmentSellError()}}}
	controller := newTestController(search, &fakePricingRepo{}, booking, RetryControllerConfig{MaxRetries: 2})

	attempt := testAttempt(timedOffer("a", "100.00", "QR", "2026-03-05T09:30:00"))
	_, err := controller.SubmitWithRetry(context.Background(), attempt)

	var resyncErr *entity.ResyncError
	require.ErrorAs(t, err, &resyncErr)
	assert.Equal(t, entity.ResyncNoFreshOffers, resyncErr.Reason)
	assert.Contains(t, resyncErr.Error(), "no flights available")
}

func TestSubmitWithRetryRebindsAgainstRefreshedPricing(t *testing.T) {
	// The pricing collaborator renumbers the traveler slot on every call;
	// each submission must carry the refreshed identifier.
	refreshed := timedOffer("a", "100.00", "QR", "2026-03-05T09:30:00")
	refreshed.TravelerPricings = []entity.TravelerPricing{{TravelerID: "42"}}
	pricing := &fakePricingRepo{refreshed: refreshed}

	booking := &fakeBookingRepo{queue: []submitResult{
		{confirmation: &entity.BookingConfirmation{ID: "order-1"}},
	}}
	controller := newTestController(&fakeSearchRepo{}, pricing, booking, RetryControllerConfig{MaxRetries: 2})

	attempt := testAttempt(timedOffer("a", "100.00", "QR", "2026-03-05T09:30:00"))
	_, err := controller.SubmitWithRetry(context.Background(), attempt)

	require.NoError(t, err)
	require.Len(t, booking.bound, 1)
	require.Len(t, booking.bound[0], 1)
	assert.Equal(t, "42", booking.bound[0][0].ID)
	assert.Equal(t, attempt.Bound, booking.bound[0])
}

func TestSubmitWithRetryWaitsOutBackoffBeforeResync(t *testing.T) {
	search := &fakeSearchRepo{offers: []*entity.Offer{
		timedOffer("fresh", "110.00", "QR", "2026-03-05T10:00:00"),
	}}
	booking := &fakeBookingRepo{queue: []submitResult{
		{err: segmentSellError()},
		{confirmation: &entity.BookingConfirmation{ID: "order-1"}},
	}}
	controller := newTestController(search, &fakePricingRepo{}, booking, RetryControllerConfig{
		MaxRetries: 2,
		Backoff:    3 * time.Second,
	})

	var slept []time.Duration
	controller.sleep = func(d time.Duration) { slept = append(slept, d) }

	attempt := testAttempt(timedOffer("a", "100.00", "QR", "2026-03-05T09:30:00"))
	_, err := controller.SubmitWithRetry(context.Background(), attempt)

	require.NoError(t, err)
	require.Len(t, slept, 1)
	assert.Equal(t, 3*time.Second, slept[0])
}

func rankedAt(airline, departAt string, price float64) entity.RankedOption {
	return entity.RankedOption{
		Airline:       airline,
		DepartureTime: departAt,
		Price:         price,
	}
}

func TestFindSimilarPicksClosestSameCarrierDeparture(t *testing.T) {
	controller := newTestController(&fakeSearchRepo{}, &fakePricingRepo{}, &fakeBookingRepo{}, RetryControllerConfig{})

	original := rankedAt("QR", "2026-03-05T12:00:00", 100)
	fresh := []entity.RankedOption{
		rankedAt("QR", "2026-03-05T13:30:00", 90),
		rankedAt("QR", "2026-03-05T11:00:00", 120),
		rankedAt("TG", "2026-03-05T12:05:00", 80),
	}

	got := controller.findSimilar(fresh, &original)

	require.NotNil(t, got)
	assert.Equal(t, "QR", got.Airline)
	assert.Equal(t, "2026-03-05T11:00:00", got.DepartureTime)
}

func TestFindSimilarRejectsDeparturesOutsideWindow(t *testing.T) {
	controller := newTestController(&fakeSearchRepo{}, &fakePricingRepo{}, &fakeBookingRepo{}, RetryControllerConfig{})

	original := rankedAt("QR", "2026-03-05T12:00:00", 100)
	fresh := []entity.RankedOption{
		rankedAt("TG", "2026-03-05T12:00:00", 80),
		rankedAt("QR", "2026-03-05T16:30:00", 90),
	}

	// No same-carrier flight within two hours: cheapest fresh option wins.
	got := controller.findSimilar(fresh, &original)

	require.NotNil(t, got)
	assert.Equal(t, "TG", got.Airline)
}

func TestFindSimilarAcceptsWindowBoundary(t *testing.T) {
	controller := newTestController(&fakeSearchRepo{}, &fakePricingRepo{}, &fakeBookingRepo{}, RetryControllerConfig{})

	original := rankedAt("QR", "2026-03-05T12:00:00", 100)
	fresh := []entity.RankedOption{
		rankedAt("TG", "2026-03-05T12:00:00", 80),
		rankedAt("QR", "2026-03-05T14:00:00", 90),
	}

	got := controller.findSimilar(fresh, &original)

	require.NotNil(t, got)
	assert.Equal(t, "QR", got.Airline)
}

func TestFindSimilarDoesNotBridgeMidnight(t *testing.T) {
	controller := newTestController(&fakeSearchRepo{}, &fakePricingRepo{}, &fakeBookingRepo{}, RetryControllerConfig{})

	// 23:50 and 00:10 the next day are twenty minutes apart on the clock,
	// but the wall-clock comparison sees a 1420-minute gap.
	original := rankedAt("QR", "2026-03-05T23:50:00", 100)
	fresh := []entity.RankedOption{
		rankedAt("TG", "2026-03-06T09:00:00", 80),
		rankedAt("QR", "2026-03-06T00:10:00", 90),
	}

	got := controller.findSimilar(fresh, &original)

	require.NotNil(t, got)
	assert.Equal(t, "TG", got.Airline)
}

func TestFindSimilarUnreadableOriginalTimeFallsBackToCheapest(t *testing.T) {
	controller := newTestController(&fakeSearchRepo{}, &fakePricingRepo{}, &fakeBookingRepo{}, RetryControllerConfig{})

	original := rankedAt("QR", "soon", 100)
	fresh := []entity.RankedOption{
		rankedAt("TG", "2026-03-05T09:00:00", 80),
		rankedAt("QR", "2026-03-05T10:00:00", 90),
	}

	got := controller.findSimilar(fresh, &original)

	require.NotNil(t, got)
	assert.Equal(t, "TG", got.Airline)
}
