package handlers

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// TimeSlotInput слот из тела запроса
type TimeSlotInput struct {
	Start string `json:"start" validate:"required,hhmm"` // "18:00"
	End   string `json:"end" validate:"required,hhmm"`   // "19:00"
}

// ToSlotIntervals разбирает слоты запроса.
// Порядок границ не проверяется: это делает usecase, чтобы вернуть понятную ошибку.
func ToSlotIntervals(slots []TimeSlotInput) ([]domain.SlotInterval, error) {
	intervals := make([]domain.SlotInterval, 0, len(slots))
	for i, s := range slots {
		from, err := types.ParseTimeOfDay(s.Start)
		if err != nil {
			return nil, fmt.Errorf("time_slots[%d].start: %w", i, err)
		}
		to, err := types.ParseTimeOfDay(s.End)
		if err != nil {
			return nil, fmt.Errorf("time_slots[%d].end: %w", i, err)
		}
		intervals = append(intervals, domain.SlotInterval{From: from, To: to})
	}
	return intervals, nil
}
