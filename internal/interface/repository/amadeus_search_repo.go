package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"flightbooking-agent/internal/domain/entity"
)

// Search requests priced offers for the given parameters. Every call
// produces fresh offers; pricing slot identifiers are valid only within the
// response that carried them.
func (r *AmadeusRepository) Search(ctx context.Context, params entity.SearchParams) ([]*entity.Offer, error) {
	adults := params.Adults
	if adults < 1 {
		adults = 1
	}

	query := url.Values{}
	query.Set("originLocationCode", params.Origin)
	query.Set("destinationLocationCode", params.Destination)
	query.Set("departureDate", params.DepartureDate)
	query.Set("adults", strconv.Itoa(adults))
	if params.ReturnDate != "" {
		query.Set("returnDate", params.ReturnDate)
	}
	if params.Children > 0 {
		query.Set("children", strconv.Itoa(params.Children))
	}
	if params.Infants > 0 {
		query.Set("infants", strconv.Itoa(params.Infants))
	}
	if params.NonStop {
		query.Set("nonStop", "true")
	}
	if params.Currency != "" {
		query.Set("currencyCode", params.Currency)
	}

	endpoint := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", r.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	r.logger.Info("Searching flights",
		"origin", params.Origin,
		"destination", params.Destination,
		"date", params.DepartureDate,
		"adults", adults)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send search request: %w", err)
	}
	defer resp.Body.Close()

	body := readBody(resp)
	if resp.StatusCode != http.StatusOK {
		return nil, apiError("flight search", resp.StatusCode, body)
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	offers := make([]*entity.Offer, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		var offer entity.Offer
		if err := json.Unmarshal(raw, &offer); err != nil {
			r.logger.Warn("Skipping undecodable offer in search response", "error", err)
			continue
		}
		offer.Raw = raw
		offers = append(offers, &offer)
	}

	r.logger.Info("Flight search completed", "offers", len(offers))
	return offers, nil
}
