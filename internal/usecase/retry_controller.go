package usecase

import (
	"context"
	"errors"
	"time"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/internal/domain/repository"
	"flightbooking-agent/pkg/logger"
	"flightbooking-agent/pkg/metrics"
	"flightbooking-agent/pkg/utils"
)

// bookingState is the phase of one submit-with-retry run.
type bookingState int

const (
	stateAttempting bookingState = iota
	stateResearching
	stateSucceeded
	stateFailed
)

// A replacement candidate must depart within this many wall-clock minutes of
// the original selection.
const similarWindowMinutes = 120

// RetryControllerConfig carries the resync policy knobs. MaxRetries counts
// resync cycles allowed after the first attempt; Backoff is the settle delay
// before each fresh search.
type RetryControllerConfig struct {
	MaxRetries int
	Backoff    time.Duration
}

// RetryController drives the booking attempt state machine: it re-searches,
// re-selects and re-attempts the submit pipeline when an order is rejected
// because of inventory or schedule drift.
type RetryController struct {
	searchRepo repository.FlightSearchRepository
	ranker     *OfferRanker
	binder     *TravelerBinder
	validator  *PricingValidator
	submitter  *BookingSubmitter
	metrics    *metrics.Metrics
	logger     logger.Logger
	cfg        RetryControllerConfig
	sleep      func(time.Duration)
}

// NewRetryController creates a new retry controller
func NewRetryController(
	searchRepo repository.FlightSearchRepository,
	ranker *OfferRanker,
	binder *TravelerBinder,
	validator *PricingValidator,
	submitter *BookingSubmitter,
	m *metrics.Metrics,
	logger logger.Logger,
	cfg RetryControllerConfig,
) *RetryController {
	return &RetryController{
		searchRepo: searchRepo,
		ranker:     ranker,
		binder:     binder,
		validator:  validator,
		submitter:  submitter,
		metrics:    m,
		logger:     logger,
		cfg:        cfg,
		sleep:      time.Sleep,
	}
}

// SubmitWithRetry runs the attempt state machine for one booking. Before
// every submission the offer is re-priced and the travelers re-bound, so a
// stale binding or price is never reused across attempts. The returned error
// is a *entity.BookingError for non-recoverable rejections and a
// *entity.ResyncError when the resync path was exhausted.
func (c *RetryController) SubmitWithRetry(ctx context.Context, attempt *entity.BookingAttempt) (*entity.BookingConfirmation, error) {
	started := time.Now()
	defer func() {
		c.metrics.BookingDuration.Observe(time.Since(started).Seconds())
	}()

	selected := attempt.Selected
	state := stateAttempting

	for {
		switch state {
		case stateAttempting:
			if attempt.Attempts > 0 {
				c.logger.Info("Retrying booking",
					"attempt", attempt.Attempts,
					"maxRetries", c.cfg.MaxRetries,
					"attemptId", attempt.ID)
			}

			confirmation, err := c.attemptOnce(ctx, attempt, selected)
			if err == nil {
				state = stateSucceeded
				attempt.Confirmation = confirmation
				c.metrics.BookingsConfirmed.Inc()
				return confirmation, nil
			}

			var bookingErr *entity.BookingError
			if !errors.As(err, &bookingErr) || !bookingErr.Recoverable() {
				state = stateFailed
				attempt.Failure = err
				c.metrics.ErrorsCount.WithLabelValues("submit").Inc()
				return nil, err
			}

			c.logger.Warn("Recoverable booking failure",
				"kind", bookingErr.Kind.String(),
				"detail", bookingErr.Detail,
				"attempt", attempt.Attempts)

			if attempt.Attempts >= c.cfg.MaxRetries {
				state = stateFailed
				attempt.Failure = &entity.ResyncError{
					Reason:   entity.ResyncRetriesExhausted,
					Attempts: attempt.Attempts,
					Cause:    bookingErr,
				}
				c.metrics.ErrorsCount.WithLabelValues("resync").Inc()
				return nil, attempt.Failure
			}
			state = stateResearching

		case stateResearching:
			replacement, err := c.resync(ctx, attempt.Params, selected, attempt.Attempts)
			if err != nil {
				state = stateFailed
				attempt.Failure = err
				c.metrics.ErrorsCount.WithLabelValues("resync").Inc()
				return nil, err
			}

			selected = replacement
			attempt.Selected = replacement
			attempt.Attempts++
			state = stateAttempting
		}
	}
}

// attemptOnce runs the validate, bind, submit pipeline against the current
// selection.
func (c *RetryController) attemptOnce(ctx context.Context, attempt *entity.BookingAttempt, selected *entity.RankedOption) (*entity.BookingConfirmation, error) {
	offer := c.validator.Validate(ctx, selected.Offer)
	bound := c.binder.BindTravelers(offer, attempt.Travelers)
	attempt.Bound = bound

	c.metrics.BookingAttempts.Inc()
	return c.submitter.Submit(ctx, offer, bound, attempt.Contact)
}

// resync waits out the backoff, searches afresh, re-ranks, and picks the
// surviving option most similar to the original selection.
func (c *RetryController) resync(ctx context.Context, params entity.SearchParams, original *entity.RankedOption, attempts int) (*entity.RankedOption, error) {
	if c.cfg.Backoff > 0 {
		c.logger.Info("Waiting for airline inventory to settle", "backoff", c.cfg.Backoff)
		c.sleep(c.cfg.Backoff)
	}

	c.metrics.ResyncsTotal.Inc()
	c.logger.Info("Searching for updated flights",
		"origin", params.Origin,
		"destination", params.Destination)

	offers, err := c.searchRepo.Search(ctx, params)
	if err != nil {
		return nil, &entity.ResyncError{
			Reason:   entity.ResyncSearchFailed,
			Attempts: attempts,
			Cause:    err,
		}
	}

	fresh := c.ranker.Rank(offers, params.Budget)
	if len(fresh) == 0 {
		return nil, &entity.ResyncError{
			Reason:   entity.ResyncNoFreshOffers,
			Attempts: attempts,
		}
	}

	replacement := c.findSimilar(fresh, original)
	c.logger.Info("Selected replacement offer",
		"airline", replacement.Airline,
		"price", replacement.Price,
		"departure", replacement.DepartureTime)
	return replacement, nil
}

// findSimilar picks the fresh option on the original's first-segment carrier
// whose departure time of day is nearest the original's, accepted only
// within the 120-minute window. Without such a candidate the cheapest fresh
// option wins. The comparison uses wall-clock minutes and does not bridge
// midnight, so 23:50 and 00:10 the next day count as a ~23-hour gap.
func (c *RetryController) findSimilar(fresh []entity.RankedOption, original *entity.RankedOption) *entity.RankedOption {
	originalMinutes, err := utils.MinutesOfDay(original.DepartureTime)
	if err != nil {
		c.logger.Warn("Could not read original departure time, selecting cheapest", "error", err)
		return &fresh[0]
	}

	var best *entity.RankedOption
	bestDiff := similarWindowMinutes + 1

	for i := range fresh {
		if fresh[i].Airline != original.Airline {
			continue
		}
		minutes, err := utils.MinutesOfDay(fresh[i].DepartureTime)
		if err != nil {
			continue
		}
		diff := minutes - originalMinutes
		if diff < 0 {
			diff = -diff
		}
		if diff <= similarWindowMinutes && diff < bestDiff {
			best = &fresh[i]
			bestDiff = diff
		}
	}

	if best == nil {
		c.logger.Warn("Could not find similar flight, selecting cheapest available",
			"airline", original.Airline)
		return &fresh[0]
	}
	return best
}
