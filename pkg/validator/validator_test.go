package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ruleInput struct {
	ConditionType string   `json:"condition_type" validate:"required,rule_type"`
	SlotFrom      string   `json:"slotFrom" validate:"required,hhmm"`
	Dates         []string `json:"dates" validate:"dive,date"`
	Price         int      `json:"price" validate:"gte=0"`
}

func TestValidate_OK(t *testing.T) {
	errs := Validate(ruleInput{ConditionType: "date", SlotFrom: "18:00", Dates: []string{"2024-06-03"}, Price: 900})
	assert.Nil(t, errs)
}

func TestValidate_Errors(t *testing.T) {
	errs := Validate(ruleInput{ConditionType: "weekly", SlotFrom: "25:00", Dates: []string{"03.06.2024"}, Price: -1})

	assert.Equal(t, "тип правила должен быть recurring или date", errs["condition_type"])
	assert.Equal(t, "время должно быть в формате HH:MM", errs["slotFrom"])
	assert.Equal(t, "дата должна быть в формате YYYY-MM-DD", errs["dates[0]"])
	assert.Equal(t, "значение должно быть не меньше 0", errs["price"])
}

func TestFirstError(t *testing.T) {
	assert.Equal(t, "", FirstError(nil))
	assert.Equal(t, "a: x", FirstError(map[string]string{"b": "y", "a": "x"}))
}
