// internal/domain/entity/search.go
package entity

// SearchParams is the structured form of a free-text travel request, as
// produced by the natural-language extractor. JSON tags match the extractor
// output contract. A zero Budget means no budget was given.
type SearchParams struct {
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	DepartureDate     string   `json:"departure_date"`
	ReturnDate        string   `json:"return_date,omitempty"`
	Adults            int      `json:"adults"`
	Children          int      `json:"children,omitempty"`
	Infants           int      `json:"infants,omitempty"`
	NonStop           bool     `json:"non_stop,omitempty"`
	Budget            float64  `json:"budget,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	PreferredAirlines []string `json:"preferred_airlines,omitempty"`
	AvoidedAirlines   []string `json:"avoided_airlines,omitempty"`
}
