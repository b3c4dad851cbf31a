package handlers

import (
	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// PriceRuleInput тело запроса создания/изменения ценового правила.
// Админ-панель отправляет slotFrom/slotTo, другие клиенты slot_from/slot_to.
type PriceRuleInput struct {
	ConditionType string      `json:"condition_type" validate:"required,rule_type"`
	Days          []string    `json:"days" validate:"omitempty,dive,required"`
	Dates         []string    `json:"dates" validate:"omitempty,dive,date"`
	SlotFrom      string      `json:"slotFrom" validate:"omitempty,hhmm"`
	SlotTo        string      `json:"slotTo" validate:"omitempty,hhmm"`
	SlotFromSnake string      `json:"slot_from" validate:"omitempty,hhmm"`
	SlotToSnake   string      `json:"slot_to" validate:"omitempty,hhmm"`
	Price         types.Money `json:"price" validate:"gte=0"`
}

// ToRuleInput сводит оба варианта написания границ слота
func (in *PriceRuleInput) ToRuleInput() models.RuleInput {
	from := in.SlotFrom
	if from == "" {
		from = in.SlotFromSnake
	}
	to := in.SlotTo
	if to == "" {
		to = in.SlotToSnake
	}

	return models.RuleInput{
		ConditionType: in.ConditionType,
		Days:          in.Days,
		Dates:         in.Dates,
		SlotFrom:      from,
		SlotTo:        to,
		Price:         in.Price,
	}
}
