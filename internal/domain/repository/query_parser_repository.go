package repository

import (
	"context"

	"flightbooking-agent/internal/domain/entity"
)

// QueryParserRepository defines the interface for natural-language request parsing
type QueryParserRepository interface {
	ParseTravelRequest(ctx context.Context, query string) (*entity.SearchParams, error)
}
