package usecase

import (
	"context"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/internal/domain/repository"
	"flightbooking-agent/pkg/logger"
	"flightbooking-agent/pkg/metrics"
)

// BookingWorkflow is the public surface of the booking core: ranking,
// binding, validation and the retrying submit pipeline.
type BookingWorkflow struct {
	searchRepo  repository.FlightSearchRepository
	bookingRepo repository.BookingRepository
	ranker      *OfferRanker
	binder      *TravelerBinder
	validator   *PricingValidator
	retry       *RetryController
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewBookingWorkflow wires the booking pipeline around the collaborator
// repositories.
func NewBookingWorkflow(
	searchRepo repository.FlightSearchRepository,
	pricingRepo repository.PricingRepository,
	bookingRepo repository.BookingRepository,
	m *metrics.Metrics,
	logger logger.Logger,
	cfg RetryControllerConfig,
) *BookingWorkflow {
	ranker := NewOfferRanker(logger)
	binder := NewTravelerBinder(logger)
	validator := NewPricingValidator(pricingRepo, logger)
	submitter := NewBookingSubmitter(bookingRepo, logger)
	retry := NewRetryController(searchRepo, ranker, binder, validator, submitter, m, logger, cfg)

	return &BookingWorkflow{
		searchRepo:  searchRepo,
		bookingRepo: bookingRepo,
		ranker:      ranker,
		binder:      binder,
		validator:   validator,
		retry:       retry,
		metrics:     m,
		logger:      logger,
	}
}

// SearchAndRank runs a fresh search and ranks the results.
func (w *BookingWorkflow) SearchAndRank(ctx context.Context, params entity.SearchParams) ([]entity.RankedOption, error) {
	w.metrics.SearchesTotal.Inc()

	offers, err := w.searchRepo.Search(ctx, params)
	if err != nil {
		w.metrics.ErrorsCount.WithLabelValues("search").Inc()
		return nil, err
	}

	return w.ranker.Rank(offers, params.Budget), nil
}

// Rank normalizes and orders raw offers without a search round-trip.
func (w *BookingWorkflow) Rank(offers []*entity.Offer, budget float64) []entity.RankedOption {
	return w.ranker.Rank(offers, budget)
}

// BindTravelers rewrites traveler slot identifiers to the offer's pricing
// entries.
func (w *BookingWorkflow) BindTravelers(offer *entity.Offer, travelers []entity.Traveler) []entity.BoundTraveler {
	return w.binder.BindTravelers(offer, travelers)
}

// ValidateAndBind re-prices an offer and rebinds travelers against the
// refreshed pricing slots.
func (w *BookingWorkflow) ValidateAndBind(ctx context.Context, offer *entity.Offer, travelers []entity.Traveler) (*entity.Offer, []entity.BoundTraveler) {
	validated := w.validator.Validate(ctx, offer)
	return validated, w.binder.BindTravelers(validated, travelers)
}

// SubmitWithRetry commits the attempt's selected offer, resyncing on
// recoverable failures up to the configured bound.
func (w *BookingWorkflow) SubmitWithRetry(ctx context.Context, attempt *entity.BookingAttempt) (*entity.BookingConfirmation, error) {
	return w.retry.SubmitWithRetry(ctx, attempt)
}

// CheckBooking retrieves an existing order by its confirmation identifier.
func (w *BookingWorkflow) CheckBooking(ctx context.Context, orderID string) (*entity.BookingConfirmation, error) {
	return w.bookingRepo.GetBooking(ctx, orderID)
}
