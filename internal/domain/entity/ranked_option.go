// internal/domain/entity/ranked_option.go
package entity

// RankedOption is a comparable view derived from one Offer. Lists of ranked
// options are always sorted ascending by price, ties keeping search order.
type RankedOption struct {
	Offer          *Offer
	Price          float64
	Currency       string
	Airline        string // carrier code of the first segment
	DepartureTime  string // vendor-local timestamp of the first segment
	ArrivalTime    string // vendor-local timestamp of the last outbound segment
	Duration       string
	Stops          int
	Recommendation string
}
