// Package console holds the interactive glue around the booking core:
// option presentation, traveler and contact collection, and user-abort
// detection at every prompt.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/internal/infrastructure/config"
	"flightbooking-agent/pkg/logger"
)

// ErrAborted is returned when the user cancels at a prompt or input ends.
var ErrAborted = errors.New("booking aborted by user")

// Prompter collects interactive input for a booking attempt
type Prompter struct {
	reader  *bufio.Reader
	out     io.Writer
	profile config.TravelerProfile
	logger  logger.Logger
}

// NewPrompter creates a new console prompter
func NewPrompter(in io.Reader, out io.Writer, profile config.TravelerProfile, logger logger.Logger) *Prompter {
	return &Prompter{
		reader:  bufio.NewReader(in),
		out:     out,
		profile: profile,
		logger:  logger,
	}
}

// ReadQuery reads the next free-text request. io.EOF maps to ErrAborted.
func (p *Prompter) ReadQuery() (string, error) {
	return p.prompt("What flight do you need? ")
}

// ChooseOption presents the top ranked options and reads the selection.
// "show more" reveals options 4-6; "no" or end of input aborts.
func (p *Prompter) ChooseOption(options []entity.RankedOption) (*entity.RankedOption, error) {
	top := options
	if len(top) > 3 {
		top = top[:3]
	}

	fmt.Fprintf(p.out, "\nI found %d flights. Here are the top %d options:\n\n", len(options), len(top))
	for i, option := range top {
		p.printOption(i+1, option)
	}

	for {
		choice, err := p.prompt("Which option would you like to book? (1, 2, 3, 'show more', or 'no' to cancel): ")
		if err != nil {
			return nil, err
		}
		choice = strings.ToLower(choice)

		switch choice {
		case "no", "n", "cancel":
			return nil, ErrAborted
		case "show more":
			if len(options) > 3 {
				fmt.Fprintln(p.out, "\nAdditional options:")
				more := options[3:]
				if len(more) > 3 {
					more = more[:3]
				}
				for i, option := range more {
					p.printOption(i+4, option)
				}
			} else {
				fmt.Fprintln(p.out, "No more options available.")
			}
		default:
			index, err := strconv.Atoi(choice)
			if err != nil || index < 1 || index > len(options) {
				fmt.Fprintln(p.out, "Please enter 1, 2, 3, 'show more', or 'no' to cancel.")
				continue
			}
			return &options[index-1], nil
		}
	}
}

func (p *Prompter) printOption(rank int, option entity.RankedOption) {
	fmt.Fprintf(p.out, "%d. %s - %.0f %s\n", rank, option.Airline, option.Price, option.Currency)
	if len(option.DepartureTime) >= 16 && len(option.ArrivalTime) >= 16 {
		fmt.Fprintf(p.out, "   %s %s -> %s\n",
			option.DepartureTime[:10], option.DepartureTime[11:16], option.ArrivalTime[11:16])
	}
	fmt.Fprintf(p.out, "   %s\n\n", option.Recommendation)
}

// CollectTravelers gathers one record per adult passenger, each assigned a
// sequential collection-order slot identifier.
func (p *Prompter) CollectTravelers(adults int) ([]entity.Traveler, error) {
	travelers := make([]entity.Traveler, 0, adults)

	for i := 0; i < adults; i++ {
		fmt.Fprintf(p.out, "\n=== Adult Traveler %d ===\n", i+1)

		traveler, err := p.collectTraveler(strconv.Itoa(i + 1))
		if err != nil {
			return nil, err
		}
		travelers = append(travelers, traveler)
	}

	return travelers, nil
}

func (p *Prompter) collectTraveler(id string) (entity.Traveler, error) {
	profile := p.profile

	useAutofill := false
	if profile.FirstName != "" {
		answer, err := p.prompt("Use auto-fill with saved profile? (y/n): ")
		if err != nil {
			return entity.Traveler{}, err
		}
		useAutofill = strings.EqualFold(answer, "y")
	}

	if !useAutofill {
		var err error
		if profile, err = p.promptProfile(); err != nil {
			return entity.Traveler{}, err
		}
	} else {
		fmt.Fprintf(p.out, "Name: %s %s\n", profile.FirstName, profile.LastName)
		fmt.Fprintf(p.out, "Passport: %s\n", profile.PassportNumber)
	}

	return entity.Traveler{
		ID:          id,
		DateOfBirth: profile.DateOfBirth,
		Name: entity.Name{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		},
		Gender: profile.Gender,
		Contact: entity.TravelerContact{
			EmailAddress: profile.Email,
			Phones: []entity.Phone{{
				DeviceType:         "MOBILE",
				CountryCallingCode: profile.CountryCode,
				Number:             profile.Phone,
			}},
		},
		Documents: []entity.Document{{
			DocumentType:     "PASSPORT",
			BirthPlace:       profile.BirthPlace,
			IssuanceLocation: profile.BirthPlace,
			IssuanceDate:     profile.PassportIssue,
			Number:           profile.PassportNumber,
			ExpiryDate:       profile.PassportExpiry,
			IssuanceCountry:  profile.PassportCountry,
			ValidityCountry:  profile.PassportCountry,
			Nationality:      profile.PassportCountry,
			Holder:           true,
		}},
	}, nil
}

type profileField struct {
	label string
	dest  *string
	upper bool
}

func (p *Prompter) promptProfile() (config.TravelerProfile, error) {
	var profile config.TravelerProfile

	fields := []profileField{
		{"First name: ", &profile.FirstName, true},
		{"Last name: ", &profile.LastName, true},
		{"Date of birth (YYYY-MM-DD): ", &profile.DateOfBirth, false},
		{"Gender (MALE/FEMALE): ", &profile.Gender, true},
		{"Email: ", &profile.Email, false},
		{"Country code (e.g. 60): ", &profile.CountryCode, false},
		{"Phone number: ", &profile.Phone, false},
		{"Passport number: ", &profile.PassportNumber, false},
		{"Passport expiry (YYYY-MM-DD): ", &profile.PassportExpiry, false},
		{"Passport issue date (YYYY-MM-DD): ", &profile.PassportIssue, false},
		{"Passport country (2-letter code): ", &profile.PassportCountry, true},
		{"Birth place (city): ", &profile.BirthPlace, false},
	}

	for _, field := range fields {
		value, err := p.prompt(field.label)
		if err != nil {
			return config.TravelerProfile{}, err
		}
		if field.upper {
			value = strings.ToUpper(value)
		}
		*field.dest = value
	}

	return profile, nil
}

// CollectContact gathers the booking-level contact record, which may differ
// from any traveler's contact.
func (p *Prompter) CollectContact() (*entity.Contact, error) {
	fmt.Fprintln(p.out, "\n=== Booking Contact Information ===")

	firstName := p.profile.FirstName
	lastName := p.profile.LastName
	email := p.profile.Email
	countryCode := p.profile.CountryCode
	phone := p.profile.Phone

	useAutofill := false
	if firstName != "" {
		answer, err := p.prompt("Use auto-fill for contact info? (y/n): ")
		if err != nil {
			return nil, err
		}
		useAutofill = strings.EqualFold(answer, "y")
	}

	if !useAutofill {
		var err error
		if firstName, err = p.prompt("Contact first name: "); err != nil {
			return nil, err
		}
		if lastName, err = p.prompt("Contact last name: "); err != nil {
			return nil, err
		}
		if email, err = p.prompt("Contact email: "); err != nil {
			return nil, err
		}
		if countryCode, err = p.prompt("Country code (e.g. 60): "); err != nil {
			return nil, err
		}
		if phone, err = p.prompt("Phone number: "); err != nil {
			return nil, err
		}
		firstName = strings.ToUpper(firstName)
		lastName = strings.ToUpper(lastName)
	}

	return &entity.Contact{
		AddresseeName: entity.Name{
			FirstName: firstName,
			LastName:  lastName,
		},
		CompanyName: "TRAVEL BOOKING",
		Purpose:     "STANDARD",
		Phones: []entity.Phone{{
			DeviceType:         "MOBILE",
			CountryCallingCode: countryCode,
			Number:             phone,
		}},
		EmailAddress: email,
		Address: entity.Address{
			Lines:       []string{"Online Booking"},
			PostalCode:  "00000",
			CityName:    "Online",
			CountryCode: "MY",
		},
	}, nil
}

// prompt writes the label and reads one trimmed line. End of input is
// treated as a user abort.
func (p *Prompter) prompt(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(line), nil
}
