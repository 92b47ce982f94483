// internal/domain/entity/traveler.go
package entity

// Name holds a traveler's legal name as printed on the travel document.
type Name struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Phone is a contact phone in the reservation system's format.
type Phone struct {
	DeviceType         string `json:"deviceType"`
	CountryCallingCode string `json:"countryCallingCode"`
	Number             string `json:"number"`
}

// TravelerContact is the contact block attached to a single traveler.
type TravelerContact struct {
	EmailAddress string  `json:"emailAddress"`
	Phones       []Phone `json:"phones"`
}

// Document is a travel document, normally a passport.
type Document struct {
	DocumentType     string `json:"documentType"`
	BirthPlace       string `json:"birthPlace,omitempty"`
	IssuanceLocation string `json:"issuanceLocation,omitempty"`
	IssuanceDate     string `json:"issuanceDate,omitempty"`
	Number           string `json:"number"`
	ExpiryDate       string `json:"expiryDate,omitempty"`
	IssuanceCountry  string `json:"issuanceCountry,omitempty"`
	ValidityCountry  string `json:"validityCountry,omitempty"`
	Nationality      string `json:"nationality,omitempty"`
	Holder           bool   `json:"holder"`
}

// Traveler is a locally collected identity, contact and document record.
// ID is the slot identifier assigned sequentially by collection order; it is
// independent of any offer's pricing slot identifiers and immutable within
// one booking attempt.
type Traveler struct {
	ID          string          `json:"id"`
	DateOfBirth string          `json:"dateOfBirth"`
	Name        Name            `json:"name"`
	Gender      string          `json:"gender"`
	Contact     TravelerContact `json:"contact"`
	Documents   []Document      `json:"documents,omitempty"`
}

// BoundTraveler is a Traveler whose slot identifier has been rewritten to
// the identifier the current offer's per-traveler pricing expects. Bindings
// must be recomputed whenever the offer is refreshed.
type BoundTraveler = Traveler
