package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"flightbooking-agent/internal/domain/entity"
)

// ValidatePricing re-confirms an offer with the pricing engine and returns
// the refreshed offer. Price, availability and traveler pricing slot
// identifiers may all differ from the input.
func (r *AmadeusRepository) ValidatePricing(ctx context.Context, offer *entity.Offer) (*entity.Offer, error) {
	request := map[string]interface{}{
		"data": map[string]interface{}{
			"type":         "flight-offers-pricing",
			"flightOffers": []json.RawMessage{offer.RawPayload()},
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pricing request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/shopping/flight-offers/pricing", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create pricing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send pricing request: %w", err)
	}
	defer resp.Body.Close()

	body := readBody(resp)
	if resp.StatusCode != http.StatusOK {
		return nil, apiError("pricing validation", resp.StatusCode, body)
	}

	var envelope struct {
		Data struct {
			FlightOffers []json.RawMessage `json:"flightOffers"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode pricing response: %w", err)
	}
	if len(envelope.Data.FlightOffers) == 0 {
		return nil, errors.New("pricing response contained no offers")
	}

	raw := envelope.Data.FlightOffers[0]
	var refreshed entity.Offer
	if err := json.Unmarshal(raw, &refreshed); err != nil {
		return nil, fmt.Errorf("failed to decode refreshed offer: %w", err)
	}
	refreshed.Raw = raw

	r.logger.Info("Offer re-priced",
		"offerId", refreshed.ID,
		"total", refreshed.Price.Total,
		"currency", refreshed.Price.Currency)

	return &refreshed, nil
}
