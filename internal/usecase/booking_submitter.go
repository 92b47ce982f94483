package usecase

import (
	"context"
	"fmt"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/internal/domain/repository"
	"flightbooking-agent/pkg/logger"
)

// BookingSubmitter commits a validated offer and bound travelers to the
// reservation system and classifies the outcome
type BookingSubmitter struct {
	bookingRepo repository.BookingRepository
	logger      logger.Logger
}

// NewBookingSubmitter creates a new booking submitter
func NewBookingSubmitter(bookingRepo repository.BookingRepository, logger logger.Logger) *BookingSubmitter {
	return &BookingSubmitter{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Submit sends the order to the reservation collaborator. The bound traveler
// count must equal the offer's per-traveler pricing count; a shortfall is a
// configuration error, surfaced as a non-recoverable BookingError without
// calling the collaborator. Inputs are never mutated.
func (s *BookingSubmitter) Submit(ctx context.Context, offer *entity.Offer, travelers []entity.BoundTraveler, contact *entity.Contact) (*entity.BookingConfirmation, error) {
	if len(offer.TravelerPricings) > 0 && len(travelers) != len(offer.TravelerPricings) {
		return nil, &entity.BookingError{
			Kind: entity.FailureRequest,
			Detail: fmt.Sprintf("offer expects %d travelers, %d bound",
				len(offer.TravelerPricings), len(travelers)),
		}
	}

	confirmation, err := s.bookingRepo.Submit(ctx, offer, travelers, contact)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking confirmed",
		"orderId", confirmation.ID,
		"offerId", offer.ID,
		"travelers", len(travelers))
	return confirmation, nil
}
