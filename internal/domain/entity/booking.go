// internal/domain/entity/booking.go
package entity

import (
	"github.com/google/uuid"
)

// AssociatedRecord links a vendor order to an airline reservation record.
type AssociatedRecord struct {
	Reference        string `json:"reference"`
	CreationDate     string `json:"creationDate,omitempty"`
	OriginSystemCode string `json:"originSystemCode,omitempty"`
}

// BookingConfirmation is the reservation system's accepted-order record.
type BookingConfirmation struct {
	ID                string             `json:"id"`
	AssociatedRecords []AssociatedRecord `json:"associatedRecords,omitempty"`
	FlightOffers      []Offer            `json:"flightOffers,omitempty"`
	Travelers         []Traveler         `json:"travelers,omitempty"`
}

// BookingAttempt is the ephemeral state of one end-to-end booking. It lives
// only for the duration of a single user interaction and is never persisted.
// Attempts counts resyncs performed so far, starting at zero.
type BookingAttempt struct {
	ID           string
	Params       SearchParams
	Selected     *RankedOption
	Travelers    []Traveler
	Bound        []BoundTraveler
	Contact      *Contact
	Attempts     int
	Confirmation *BookingConfirmation
	Failure      error
}

// NewBookingAttempt seeds the state for one end-to-end booking.
func NewBookingAttempt(params SearchParams, selected *RankedOption, travelers []Traveler, contact *Contact) *BookingAttempt {
	return &BookingAttempt{
		ID:        uuid.NewString(),
		Params:    params,
		Selected:  selected,
		Travelers: travelers,
		Contact:   contact,
	}
}
