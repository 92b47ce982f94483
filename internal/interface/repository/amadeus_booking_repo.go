package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"flightbooking-agent/internal/domain/entity"
)

// flightOrderRequest is the order-creation envelope.
type flightOrderRequest struct {
	Data flightOrderData `json:"data"`
}

type flightOrderData struct {
	Type         string                 `json:"type"`
	FlightOffers []json.RawMessage      `json:"flightOffers"`
	Travelers    []entity.BoundTraveler `json:"travelers"`
	Contacts     []*entity.Contact      `json:"contacts,omitempty"`
}

// Submit commits an offer, bound travelers and a contact record to the
// reservation system. The inputs are never mutated. A vendor rejection comes
// back as a *entity.BookingError with the kind classified here, once.
func (r *AmadeusRepository) Submit(ctx context.Context, offer *entity.Offer, travelers []entity.BoundTraveler, contact *entity.Contact) (*entity.BookingConfirmation, error) {
	request := flightOrderRequest{
		Data: flightOrderData{
			Type:         "flight-order",
			FlightOffers: []json.RawMessage{offer.RawPayload()},
			Travelers:    travelers,
		},
	}
	if contact != nil {
		request.Data.Contacts = []*entity.Contact{contact}
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/booking/flight-orders", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	r.logger.Info("Submitting flight order",
		"offerId", offer.ID,
		"travelers", len(travelers))

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send order request: %w", err)
	}
	defer resp.Body.Close()

	body := readBody(resp)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bookingErr := classifyBookingError(resp.StatusCode, body)
		r.logger.Warn("Order rejected",
			"kind", bookingErr.Kind.String(),
			"status", bookingErr.Status,
			"code", bookingErr.Code,
			"detail", bookingErr.Detail)
		return nil, bookingErr
	}

	var envelope struct {
		Data entity.BookingConfirmation `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	r.logger.Info("Order created", "orderId", envelope.Data.ID)
	return &envelope.Data, nil
}

// GetBooking retrieves an existing order by its confirmation identifier.
func (r *AmadeusRepository) GetBooking(ctx context.Context, orderID string) (*entity.BookingConfirmation, error) {
	endpoint := fmt.Sprintf("%s/v1/booking/flight-orders/%s", r.baseURL, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order lookup request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send order lookup request: %w", err)
	}
	defer resp.Body.Close()

	body := readBody(resp)
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", entity.ErrBookingNotFound, orderID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError("order lookup", resp.StatusCode, body)
	}

	var envelope struct {
		Data entity.BookingConfirmation `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode order lookup response: %w", err)
	}

	return &envelope.Data, nil
}
