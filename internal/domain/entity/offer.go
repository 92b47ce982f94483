// internal/domain/entity/offer.go
package entity

import (
	"encoding/json"
)

// Price is the total cost of an offer as reported by the pricing engine.
type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// FlightPoint is one end of a segment: an airport and a local timestamp.
type FlightPoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

// Segment is a single takeoff/landing pair within an itinerary.
type Segment struct {
	CarrierCode string      `json:"carrierCode"`
	Number      string      `json:"number,omitempty"`
	Departure   FlightPoint `json:"departure"`
	Arrival     FlightPoint `json:"arrival"`
}

// Itinerary is an ordered sequence of segments flown in one direction.
type Itinerary struct {
	Duration string    `json:"duration,omitempty"`
	Segments []Segment `json:"segments"`
}

// TravelerPricing is one per-traveler price entry of an offer. TravelerID is
// the pricing slot identifier the pricing engine assigned for this offer
// only; it is not stable across searches.
type TravelerPricing struct {
	TravelerID   string `json:"travelerId"`
	FareOption   string `json:"fareOption,omitempty"`
	TravelerType string `json:"travelerType,omitempty"`
	Price        Price  `json:"price"`
}

// Offer is an immutable snapshot of one priced itinerary returned by a
// search. Offers are never mutated, only superseded by a fresh search or a
// pricing revalidation. Raw carries the untouched vendor payload because the
// pricing and booking endpoints require the full offer body echoed back.
type Offer struct {
	ID               string            `json:"id"`
	Price            Price             `json:"price"`
	Itineraries      []Itinerary       `json:"itineraries"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`
	Raw              json.RawMessage   `json:"-"`
}

// RawPayload returns the vendor payload for wire calls, falling back to a
// re-marshal of the typed view when the offer was built locally.
func (o *Offer) RawPayload() json.RawMessage {
	if len(o.Raw) > 0 {
		return o.Raw
	}
	raw, _ := json.Marshal(o)
	return raw
}
