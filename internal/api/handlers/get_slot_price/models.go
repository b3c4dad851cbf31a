package get_slot_price

import (
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// SlotPriceResponse HTTP response model
type SlotPriceResponse struct {
	CourtID     string          `json:"court_id"`
	Date        types.Date      `json:"date"`
	Start       types.TimeOfDay `json:"start"`
	End         types.TimeOfDay `json:"end"`
	Price       types.Money     `json:"price"`
	PriceSource string          `json:"price_source"` // base | recurring | date
	RuleID      *int64          `json:"rule_id,omitempty"`
}
