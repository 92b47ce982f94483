// Package export writes one-shot snapshots of ranked search results. The
// files are debugging artifacts; nothing reads them back.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/pkg/logger"

	"github.com/google/uuid"
)

// JSONExporter writes timestamped search snapshots to a directory
type JSONExporter struct {
	dir    string
	logger logger.Logger
}

// NewJSONExporter creates a new search snapshot exporter
func NewJSONExporter(dir string, logger logger.Logger) *JSONExporter {
	return &JSONExporter{
		dir:    dir,
		logger: logger,
	}
}

type searchSnapshot struct {
	ExportID          string              `json:"exportId"`
	SearchTimestamp   time.Time           `json:"searchTimestamp"`
	SearchParameters  entity.SearchParams `json:"searchParameters"`
	TotalFlightsFound int                 `json:"totalFlightsFound"`
	FlightAnalysis    []flightAnalysis    `json:"flightAnalysis"`
}

type flightAnalysis struct {
	Rank           int             `json:"rank"`
	AirlineCode    string          `json:"airlineCode"`
	Price          float64         `json:"price"`
	Currency       string          `json:"currency"`
	DepartureTime  string          `json:"departureTime"`
	ArrivalTime    string          `json:"arrivalTime"`
	Duration       string          `json:"duration"`
	Stops          int             `json:"stops"`
	Recommendation string          `json:"recommendation"`
	RawFlightData  json.RawMessage `json:"rawFlightData,omitempty"`
}

// Export writes flight_search_<timestamp>.json and returns the path written.
func (e *JSONExporter) Export(params entity.SearchParams, options []entity.RankedOption) (string, error) {
	now := time.Now()
	snapshot := searchSnapshot{
		ExportID:          uuid.NewString(),
		SearchTimestamp:   now,
		SearchParameters:  params,
		TotalFlightsFound: len(options),
		FlightAnalysis:    make([]flightAnalysis, 0, len(options)),
	}

	for i, option := range options {
		analysis := flightAnalysis{
			Rank:           i + 1,
			AirlineCode:    option.Airline,
			Price:          option.Price,
			Currency:       option.Currency,
			DepartureTime:  option.DepartureTime,
			ArrivalTime:    option.ArrivalTime,
			Duration:       option.Duration,
			Stops:          option.Stops,
			Recommendation: option.Recommendation,
		}
		if option.Offer != nil {
			analysis.RawFlightData = option.Offer.RawPayload()
		}
		snapshot.FlightAnalysis = append(snapshot.FlightAnalysis, analysis)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal search snapshot: %w", err)
	}

	filename := fmt.Sprintf("flight_search_%s.json", now.Format("20060102_150405"))
	path := filepath.Join(e.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write search snapshot: %w", err)
	}

	e.logger.Info("Search snapshot exported", "path", path, "options", len(options))
	return path, nil
}
