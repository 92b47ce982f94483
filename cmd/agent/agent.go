package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/internal/domain/repository"
	"flightbooking-agent/internal/interface/console"
	"flightbooking-agent/internal/interface/export"
	"flightbooking-agent/internal/usecase"
	"flightbooking-agent/pkg/logger"
)

// agent drives one interactive booking session per user request.
type agent struct {
	workflow *usecase.BookingWorkflow
	parser   repository.QueryParserRepository
	exporter *export.JSONExporter
	prompter *console.Prompter
	logger   logger.Logger
}

func newAgent(
	workflow *usecase.BookingWorkflow,
	parser repository.QueryParserRepository,
	exporter *export.JSONExporter,
	prompter *console.Prompter,
	logger logger.Logger,
) *agent {
	return &agent{
		workflow: workflow,
		parser:   parser,
		exporter: exporter,
		prompter: prompter,
		logger:   logger,
	}
}

// run is the interactive loop: free-text booking requests, or
// "check <order-id>" to verify an existing booking, until "quit" or EOF.
func (a *agent) run(ctx context.Context) {
	fmt.Println("=== Flight Booking Agent ===")
	fmt.Println("Example: 'Find me the best flights from KUL to BKK, direct flight, budget $400'")
	fmt.Println("Or type 'check <flight-order-id>' to verify an existing booking.")
	fmt.Println("Type 'quit' to exit.")
	fmt.Println()

	for {
		if ctx.Err() != nil {
			return
		}

		query, err := a.prompter.ReadQuery()
		if err != nil {
			return
		}

		switch {
		case query == "":
			fmt.Println("Please tell me what flight you're looking for.")
			continue
		case query == "quit" || query == "exit" || query == "q":
			fmt.Println("Thank you for using the booking service. Safe travels!")
			return
		case strings.HasPrefix(strings.ToLower(query), "check "):
			orderID := strings.TrimSpace(query[6:])
			if orderID == "" {
				fmt.Println("Please provide a flight order ID. Example: 'check eJzTd9c3N3b2C%2FUCAApkAkA%3D'")
				continue
			}
			a.checkBooking(ctx, orderID)
		default:
			a.executeWorkflow(ctx, query)
		}

		fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
	}
}

// executeWorkflow runs one booking end to end: parse, search, rank, export,
// select, collect, submit with retry.
func (a *agent) executeWorkflow(ctx context.Context, query string) {
	fmt.Println("\nUnderstanding your request...")
	params, err := a.parser.ParseTravelRequest(ctx, query)
	if err != nil {
		fmt.Printf("Could not understand the request: %v\n", err)
		return
	}
	fmt.Printf("Understood: %s -> %s on %s\n", params.Origin, params.Destination, params.DepartureDate)
	if params.Budget > 0 {
		currency := params.Currency
		if currency == "" {
			currency = "USD"
		}
		fmt.Printf("Budget: %.0f %s\n", params.Budget, currency)
	}

	fmt.Println("\nSearching and analyzing flights...")
	options, err := a.workflow.SearchAndRank(ctx, *params)
	if err != nil {
		fmt.Printf("Flight search failed: %v\n", err)
		return
	}
	if len(options) == 0 {
		fmt.Println("No flights found matching your criteria.")
		return
	}

	if path, err := a.exporter.Export(*params, options); err != nil {
		a.logger.Warn("Could not export flight data", "error", err)
	} else {
		fmt.Printf("Flight data exported to: %s\n", path)
	}

	selected, err := a.prompter.ChooseOption(options)
	if err != nil {
		fmt.Println("Booking cancelled.")
		return
	}

	fmt.Printf("\nGreat choice. %s for %.0f %s.\n", selected.Airline, selected.Price, selected.Currency)
	fmt.Println("Now I need some traveler information for the booking...")

	travelers, err := a.prompter.CollectTravelers(params.Adults)
	if err != nil {
		fmt.Println("Booking cancelled.")
		return
	}
	contact, err := a.prompter.CollectContact()
	if err != nil {
		fmt.Println("Booking cancelled.")
		return
	}

	fmt.Println("\nProcessing your booking...")
	attempt := entity.NewBookingAttempt(*params, selected, travelers, contact)
	confirmation, err := a.workflow.SubmitWithRetry(ctx, attempt)
	if err != nil {
		a.reportFailure(err)
		return
	}

	fmt.Println("\nBooking Confirmation:")
	fmt.Printf("Flight Order ID: %s\n", confirmation.ID)
	for _, record := range confirmation.AssociatedRecords {
		fmt.Printf("PNR Reference: %s\n", record.Reference)
		break
	}
	fmt.Printf("Flight: %s\n", selected.Airline)
	fmt.Printf("Route: %s -> %s\n", params.Origin, params.Destination)
	fmt.Printf("Price: %.0f %s\n", selected.Price, selected.Currency)
	fmt.Printf("\nVerify anytime with: check %s\n", confirmation.ID)
}

// reportFailure prints a human-readable message naming the failed stage.
func (a *agent) reportFailure(err error) {
	var resyncErr *entity.ResyncError
	if errors.As(err, &resyncErr) {
		fmt.Printf("\nBooking not completed: %v\n", resyncErr)
		fmt.Println("Please try searching again with different dates or preferences.")
		return
	}

	var bookingErr *entity.BookingError
	if errors.As(err, &bookingErr) {
		fmt.Printf("\nBooking rejected: %v\n", bookingErr)
		return
	}

	fmt.Printf("\nBooking failed: %v\n", err)
}

// checkBooking retrieves and prints an existing order.
func (a *agent) checkBooking(ctx context.Context, orderID string) {
	fmt.Printf("\nChecking booking: %s\n", orderID)

	booking, err := a.workflow.CheckBooking(ctx, orderID)
	if err != nil {
		if errors.Is(err, entity.ErrBookingNotFound) {
			fmt.Printf("No booking found for order ID %s\n", orderID)
		} else {
			fmt.Fprintf(os.Stderr, "Could not retrieve booking: %v\n", err)
		}
		return
	}

	fmt.Println("\nBooking Details:")
	fmt.Printf("Flight Order ID: %s\n", booking.ID)
	for _, record := range booking.AssociatedRecords {
		fmt.Printf("PNR Reference: %s\n", record.Reference)
		if len(record.CreationDate) >= 10 {
			fmt.Printf("Booking Date: %s\n", record.CreationDate[:10])
		}
		break
	}

	for _, offer := range booking.FlightOffers {
		fmt.Printf("Total Price: %s %s\n", offer.Price.Currency, offer.Price.Total)
		for i, itinerary := range offer.Itineraries {
			fmt.Printf("\nFlight %d:\n", i+1)
			for j, segment := range itinerary.Segments {
				fmt.Printf("  Segment %d: %s -> %s\n", j+1, segment.Departure.IATACode, segment.Arrival.IATACode)
				fmt.Printf("  Departure: %s\n", segment.Departure.At)
				fmt.Printf("  Arrival: %s\n", segment.Arrival.At)
				fmt.Printf("  Airline: %s\n", segment.CarrierCode)
			}
		}
		break
	}

	if len(booking.Travelers) > 0 {
		fmt.Printf("\nTravelers (%d):\n", len(booking.Travelers))
		for i, traveler := range booking.Travelers {
			fmt.Printf("  %d. %s %s\n", i+1, traveler.Name.FirstName, traveler.Name.LastName)
		}
	}

	fmt.Println("\nBooking verification complete.")
}
