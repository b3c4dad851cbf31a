package quote_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	quoteBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/quote_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	BookingDate string                   `json:"booking_date" validate:"required,date"`
	TimeSlots   []handlers.TimeSlotInput `json:"time_slots" validate:"dive"`
}

// QuoteResponse HTTP response model. Формат совпадает с бронированием, чтобы форма могла показать итог до создания.
type QuoteResponse struct {
	CourtID         string          `json:"court_id"`
	BookingDate     types.Date      `json:"booking_date"`
	StartTime       types.TimeOfDay `json:"start_time"`
	EndTime         types.TimeOfDay `json:"end_time"`
	DurationMinutes int             `json:"duration_minutes"`
	TimeSlots       []QuotedSlot    `json:"time_slots"`
	TotalAmount     types.Money     `json:"total_amount"`
}

// QuotedSlot слот с ценой и её источником
type QuotedSlot struct {
	Start       types.TimeOfDay `json:"start"`
	End         types.TimeOfDay `json:"end"`
	Price       types.Money     `json:"price"`
	PriceSource string          `json:"price_source"`
	RuleID      *int64          `json:"rule_id,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(courtID uuid.UUID) (*quoteBooking.Request, error) {
	date, err := types.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	intervals, err := handlers.ToSlotIntervals(r.TimeSlots)
	if err != nil {
		return nil, err
	}

	return &quoteBooking.Request{CourtID: courtID, Date: date, Intervals: intervals}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteBooking.Response) *QuoteResponse {
	slots := make([]QuotedSlot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, FromQuotedSlot(s))
	}

	return &QuoteResponse{
		CourtID:         resp.CourtID.String(),
		BookingDate:     resp.Date,
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		DurationMinutes: resp.DurationMinutes,
		TimeSlots:       slots,
		TotalAmount:     resp.TotalAmount,
	}
}

// FromQuotedSlot конвертирует слот расчёта
func FromQuotedSlot(s quoteBooking.QuotedSlot) QuotedSlot {
	slot := QuotedSlot{
		Start:       s.Interval.From,
		End:         s.Interval.To,
		Price:       s.Price,
		PriceSource: string(s.Source),
	}
	if s.RuleID != 0 {
		ruleID := s.RuleID
		slot.RuleID = &ruleID
	}
	return slot
}
