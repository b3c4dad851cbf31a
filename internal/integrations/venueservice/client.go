package venueservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Client клиент для работы с VenueService (каталог кортов)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента VenueService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCourt получает корт и нормализует его в доменную модель (без ценовых правил)
func (c *Client) GetCourt(ctx context.Context, courtID uuid.UUID) (*domain.Court, error) {
	url := fmt.Sprintf("%s/internal/courts/%s", c.baseURL, courtID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrCourtNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid court ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var court Court
	if err := json.NewDecoder(resp.Body).Decode(&court); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result, skipped, err := court.ToDomain()
	if err != nil {
		return nil, err
	}

	if court.ClosesAtMidnight() {
		c.log.Warn("GetCourt: court=%s closes at midnight (open_to=%q), slots are offered until %s",
			courtID, court.OpenTo, result.OpenTo)
	}

	for _, s := range skipped {
		c.log.Warn("GetCourt: court=%s, skipping malformed unavailability slot date=%q from=%q to=%q",
			courtID, s.Date, s.From, s.To)
	}

	return result, nil
}
