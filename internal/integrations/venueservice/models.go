package venueservice

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Court модель корта из VenueService.
// Цены приходят то числом, то строкой, поэтому читаются как raw JSON.
type Court struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	PricePerHour        json.RawMessage      `json:"price_per_hour"`
	DefaultPrice        json.RawMessage      `json:"default_price"`
	OpenFrom            string               `json:"open_from"`
	OpenTo              string               `json:"open_to"`
	SlotDurationMinutes int                  `json:"slot_duration_minutes"`
	UnavailabilitySlots []UnavailabilitySlot `json:"unavailability_slots"`
	ManagerIDs          []int64              `json:"manager_ids"`
}

// UnavailabilitySlot окно недоступности корта
type UnavailabilitySlot struct {
	Date   string `json:"date"`
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain нормализует ответ VenueService в снимок корта (без ценовых правил).
// Некорректные окна недоступности пропускаются и возвращаются в skipped.
func (c *Court) ToDomain() (court *domain.Court, skipped []UnavailabilitySlot, err error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: court id %q: %v", ErrInvalidResponse, c.ID, err)
	}

	basePrice, err := c.basePrice()
	if err != nil {
		return nil, nil, err
	}

	court = &domain.Court{
		ID:                  id,
		Name:                c.Name,
		BasePrice:           basePrice,
		SlotDurationMinutes: c.SlotDurationMinutes,
		ManagerIDs:          c.ManagerIDs,
	}

	if c.OpenFrom != "" && c.OpenTo != "" {
		openTo := c.OpenTo
		if c.ClosesAtMidnight() {
			openTo = lastMinuteOfDay
		}
		hours, err := domain.ParseSlotInterval(c.OpenFrom, openTo)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: opening hours: %v", ErrInvalidResponse, err)
		}
		court.OpenFrom = &hours.From
		court.OpenTo = &hours.To
	}

	for _, s := range c.UnavailabilitySlots {
		window, err := s.toDomain()
		if err != nil {
			skipped = append(skipped, s)
			continue
		}
		court.Unavailability = append(court.Unavailability, window)
	}

	return court, skipped, nil
}

// lastMinuteOfDay последнее представимое время закрытия: TimeOfDay не доходит до 24:00
const lastMinuteOfDay = "23:59"

// ClosesAtMidnight сообщает, что площадка закрывается в полночь ("00:00" или "24:00").
// Такие часы сдвигаются на 23:59, поэтому слот, заканчивающийся в 24:00, не предлагается.
func (c *Court) ClosesAtMidnight() bool {
	switch c.OpenTo {
	case "00:00", "00:00:00", "24:00", "24:00:00":
		return c.OpenFrom != "" && c.OpenFrom != "00:00" && c.OpenFrom != "00:00:00"
	}
	return false
}

// basePrice берет price_per_hour, а если он не задан или равен нулю, default_price
func (c *Court) basePrice() (types.Money, error) {
	price, ok, err := parseOptionalMoney(c.PricePerHour)
	if err != nil {
		return 0, fmt.Errorf("%w: price_per_hour: %v", ErrInvalidResponse, err)
	}
	if ok && price > 0 {
		return price, nil
	}

	fallback, ok, err := parseOptionalMoney(c.DefaultPrice)
	if err != nil {
		return 0, fmt.Errorf("%w: default_price: %v", ErrInvalidResponse, err)
	}
	if ok {
		price = fallback
	}

	if price.IsNegative() {
		return 0, fmt.Errorf("%w: negative base price %s", ErrInvalidResponse, price)
	}
	return price, nil
}

func (s UnavailabilitySlot) toDomain() (domain.UnavailableWindow, error) {
	date, err := types.ParseDate(s.Date)
	if err != nil {
		return domain.UnavailableWindow{}, err
	}
	interval, err := domain.ParseSlotInterval(s.From, s.To)
	if err != nil {
		return domain.UnavailableWindow{}, err
	}
	return domain.UnavailableWindow{Date: date, Interval: interval, Reason: s.Reason}, nil
}

// parseOptionalMoney разбирает число или строку; null и "" считаются отсутствующим значением
func parseOptionalMoney(raw json.RawMessage) (types.Money, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`)) {
		return 0, false, nil
	}

	var m types.Money
	if err := m.UnmarshalJSON(raw); err != nil {
		return 0, false, err
	}
	return m, true, nil
}
