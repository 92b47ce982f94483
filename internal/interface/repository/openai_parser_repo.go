package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"flightbooking-agent/internal/domain/entity"
	"flightbooking-agent/pkg/logger"
	"flightbooking-agent/templates"
)

// jsonObjectPattern pulls the first JSON object out of a model reply that
// may be wrapped in prose or code fences.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// OpenAIParserRepository extracts structured search parameters from
// free-text travel requests via the chat completions API.
type OpenAIParserRepository struct {
	logger     logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIParserRepository creates a new natural-language parser repository
func NewOpenAIParserRepository(apiKey, model, baseURL string, timeout time.Duration, logger logger.Logger) *OpenAIParserRepository {
	return &OpenAIParserRepository{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ParseTravelRequest turns a free-text query into search parameters. Origin,
// destination and departure date are required in the extraction; anything
// else stays at its zero value when not mentioned.
func (r *OpenAIParserRepository) ParseTravelRequest(ctx context.Context, query string) (*entity.SearchParams, error) {
	now := time.Now()
	prompt := fmt.Sprintf(templates.SearchExtractionPrompt, query, now.Format("2006-01-02"), now.Year())

	request := chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: templates.SearchExtractionSystem},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   300,
		Temperature: 0,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/chat/completions", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send extraction request: %w", err)
	}
	defer resp.Body.Close()

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("extraction failed: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return nil, errors.New("extraction returned no choices")
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	jsonText := jsonObjectPattern.FindString(content)
	if jsonText == "" {
		jsonText = content
	}

	var params entity.SearchParams
	if err := json.Unmarshal([]byte(jsonText), &params); err != nil {
		return nil, fmt.Errorf("could not parse travel request: %w", err)
	}

	if params.Origin == "" || params.Destination == "" || params.DepartureDate == "" {
		return nil, errors.New("could not parse travel request: origin, destination and departure date are required")
	}
	if params.Adults < 1 {
		params.Adults = 1
	}

	r.logger.Info("Parsed travel request",
		"origin", params.Origin,
		"destination", params.Destination,
		"date", params.DepartureDate,
		"budget", params.Budget)

	return &params, nil
}
