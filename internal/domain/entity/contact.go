// internal/domain/entity/contact.go
package entity

// Address is the postal part of a booking contact.
type Address struct {
	Lines       []string `json:"lines"`
	PostalCode  string   `json:"postalCode"`
	CityName    string   `json:"cityName"`
	CountryCode string   `json:"countryCode"`
}

// Contact is the booking-level contact record submitted with an order. It
// may differ from any traveler's own contact block.
type Contact struct {
	AddresseeName Name    `json:"addresseeName"`
	CompanyName   string  `json:"companyName,omitempty"`
	Purpose       string  `json:"purpose"`
	Phones        []Phone `json:"phones"`
	EmailAddress  string  `json:"emailAddress"`
	Address       Address `json:"address"`
}
