package repository

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/pkg/logger"
)

// Vendor error code for "could not sell segment".
const segmentSellFailureCode = 34651

// AmadeusRepository talks to the flight API for searches, pricing
// revalidation, order submission and order lookup. The http client is
// expected to inject bearer tokens (see infrastructure/oauth).
type AmadeusRepository struct {
	logger     logger.Logger
	baseURL    string
	httpClient *http.Client
}

// NewAmadeusRepository creates a new flight API repository
func NewAmadeusRepository(httpClient *http.Client, baseURL string, logger logger.Logger) *AmadeusRepository {
	return &AmadeusRepository{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// apiErrorPayload is the vendor's error envelope.
type apiErrorPayload struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// apiError turns a non-2xx vendor response into a human-readable error with
// the HTTP status attached.
func apiError(op string, status int, body []byte) error {
	var payload apiErrorPayload
	detail := http.StatusText(status)
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		first := payload.Errors[0]
		if first.Detail != "" {
			detail = first.Detail
		} else if first.Title != "" {
			detail = first.Title
		}
	}
	return fmt.Errorf("%s failed: %s (status %d)", op, detail, status)
}

// classifyBookingError maps the vendor's order-rejection payload to a tagged
// BookingError. Segment sell failures (by code or detail text) and schedule
// changes are recoverable; everything else is a request error.
func classifyBookingError(status int, body []byte) *entity.BookingError {
	bookingErr := &entity.BookingError{
		Kind:   entity.FailureRequest,
		Status: status,
		Detail: http.StatusText(status),
	}

	var payload apiErrorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return bookingErr
	}

	for i, apiErr := range payload.Errors {
		if i == 0 {
			bookingErr.Code = apiErr.Code
			if apiErr.Detail != "" {
				bookingErr.Detail = apiErr.Detail
			}
		}

		text := strings.ToLower(apiErr.Title + " " + apiErr.Detail)
		switch {
		case apiErr.Code == segmentSellFailureCode,
			strings.Contains(text, "segment sell failure"),
			strings.Contains(text, "could not sell segment"),
			strings.Contains(text, "flight no longer available"):
			bookingErr.Kind = entity.FailureSegmentSell
			bookingErr.Code = apiErr.Code
			bookingErr.Detail = apiErr.Detail
		case strings.Contains(text, "schedule change"):
			bookingErr.Kind = entity.FailureScheduleChange
			bookingErr.Code = apiErr.Code
			bookingErr.Detail = apiErr.Detail
		}
	}

	return bookingErr
}

// readBody drains a response body, tolerating read failures.
func readBody(resp *http.Response) []byte {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	return body
}
