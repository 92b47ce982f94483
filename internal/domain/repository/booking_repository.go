package repository

import (
	"context"

	"flightbooking-agent/internal/domain/entity"
)

// BookingRepository defines the interface for order submission and lookup
type BookingRepository interface {
	// Submit commits an offer, bound travelers and a contact record to the
	// reservation system. A vendor rejection is returned as a
	// *entity.BookingError classified at the adapter boundary.
	Submit(ctx context.Context, offer *entity.Offer, travelers []entity.BoundTraveler, contact *entity.Contact) (*entity.BookingConfirmation, error)
	// GetBooking retrieves an existing order by its confirmation identifier.
	// A missing order satisfies errors.Is(err, entity.ErrBookingNotFound).
	GetBooking(ctx context.Context, orderID string) (*entity.BookingConfirmation, error)
}
