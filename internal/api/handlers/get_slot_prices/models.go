package get_slot_prices

import (
	getSlotPrices "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_slot_prices"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// SlotPricesResponse HTTP response model
type SlotPricesResponse struct {
	CourtID             string     `json:"court_id"`
	Date                types.Date `json:"date"`
	SlotDurationMinutes int        `json:"slot_duration_minutes"`
	Slots               []Slot     `json:"slots"`
}

// Slot слот сетки дня с ценой
type Slot struct {
	Start       types.TimeOfDay `json:"start"`
	End         types.TimeOfDay `json:"end"`
	Price       types.Money     `json:"price"`
	PriceSource string          `json:"price_source"` // base | recurring | date
	Available   bool            `json:"available"`
	Reason      string          `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotPrices.Response) *SlotPricesResponse {
	slots := make([]Slot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, Slot{
			Start:       s.Interval.From,
			End:         s.Interval.To,
			Price:       s.Price,
			PriceSource: string(s.Source),
			Available:   s.Available,
			Reason:      s.Reason,
		})
	}

	return &SlotPricesResponse{
		CourtID:             resp.CourtID.String(),
		Date:                resp.Date,
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}
