package repository

import (
	"context"

	"flightbooking-agent/internal/domain/entity"
)

// FlightSearchRepository defines the interface for flight offer searches
type FlightSearchRepository interface {
	Search(ctx context.Context, params entity.SearchParams) ([]*entity.Offer, error)
}
