package court

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// entry снимок корта в Redis
type entry struct {
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name"`
	BasePrice           types.Money      `json:"base_price"`
	OpenFrom            *types.TimeOfDay `json:"open_from,omitempty"`
	OpenTo              *types.TimeOfDay `json:"open_to,omitempty"`
	SlotDurationMinutes int              `json:"slot_duration_minutes"`
	Unavailability      []windowEntry    `json:"unavailability,omitempty"`
	ManagerIDs          []int64          `json:"manager_ids,omitempty"`
}

type windowEntry struct {
	Date   types.Date      `json:"date"`
	From   types.TimeOfDay `json:"from"`
	To     types.TimeOfDay `json:"to"`
	Reason string          `json:"reason,omitempty"`
}

func toEntry(c *domain.Court) entry {
	e := entry{
		ID:                  c.ID,
		Name:                c.Name,
		BasePrice:           c.BasePrice,
		OpenFrom:            c.OpenFrom,
		OpenTo:              c.OpenTo,
		SlotDurationMinutes: c.SlotDurationMinutes,
		ManagerIDs:          c.ManagerIDs,
	}
	for _, w := range c.Unavailability {
		e.Unavailability = append(e.Unavailability, windowEntry{
			Date:   w.Date,
			From:   w.Interval.From,
			To:     w.Interval.To,
			Reason: w.Reason,
		})
	}
	return e
}

// toDomain восстанавливает корт; ценовые правила в кэше не хранятся
func (e entry) toDomain() *domain.Court {
	c := &domain.Court{
		ID:                  e.ID,
		Name:                e.Name,
		BasePrice:           e.BasePrice,
		OpenFrom:            e.OpenFrom,
		OpenTo:              e.OpenTo,
		SlotDurationMinutes: e.SlotDurationMinutes,
		ManagerIDs:          e.ManagerIDs,
	}
	for _, w := range e.Unavailability {
		c.Unavailability = append(c.Unavailability, domain.UnavailableWindow{
			Date:     w.Date,
			Interval: domain.SlotInterval{From: w.From, To: w.To},
			Reason:   w.Reason,
		})
	}
	return c
}
