package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модели

// RuleInput поля правила из формы админ-панели
type RuleInput struct {
	ConditionType string      `json:"condition_type"`  // recurring | date
	Days          []string    `json:"days,omitempty"`  // mon..sun
	Dates         []string    `json:"dates,omitempty"` // YYYY-MM-DD
	SlotFrom      string      `json:"slotFrom"`
	SlotTo        string      `json:"slotTo"`
	Price         types.Money `json:"price"`
}

// CreateRuleRequest запрос на создание ценового правила
type CreateRuleRequest struct {
	UserID  int64     `json:"-"`
	CourtID uuid.UUID `json:"-"`
	RuleInput
}

// UpdateRuleRequest запрос на изменение ценового правила (полная замена полей)
type UpdateRuleRequest struct {
	UserID int64 `json:"-"`
	RuleInput
}

// ToDomain разбирает поля формы в доменное правило
func (in RuleInput) ToDomain(courtID uuid.UUID) (*domain.PriceRule, error) {
	interval, err := domain.ParseSlotInterval(in.SlotFrom, in.SlotTo)
	if err != nil {
		return nil, err
	}

	rule := &domain.PriceRule{
		CourtID:  courtID,
		Type:     domain.RuleType(in.ConditionType),
		Interval: interval,
		Price:    in.Price,
	}

	for _, code := range in.Days {
		day, err := domain.ParseWeekday(code)
		if err != nil {
			return nil, err
		}
		rule.Days = append(rule.Days, day)
	}

	if len(in.Dates) > domain.MaxRuleDates {
		return nil, fmt.Errorf("%w: at most %d dates", domain.ErrInvalidRule, domain.MaxRuleDates)
	}
	for _, s := range in.Dates {
		date, err := types.ParseDate(s)
		if err != nil {
			return nil, err
		}
		rule.Dates = append(rule.Dates, date)
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	return rule, nil
}

// Response модели

// RuleResponse ответ с данными ценового правила
type RuleResponse struct {
	ID            int64       `json:"id"`
	CourtID       string      `json:"court_id"`
	ConditionType string      `json:"condition_type"`
	Days          []string    `json:"days"`
	Dates         []string    `json:"dates"`
	SlotFrom      string      `json:"slotFrom"`
	SlotTo        string      `json:"slotTo"`
	Price         types.Money `json:"price"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// RuleListResponse ответ со списком правил корта в порядке создания
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total"`
}

// FromDomainRule конвертирует доменное правило в ответ
func FromDomainRule(rule *domain.PriceRule) *RuleResponse {
	days := make([]string, 0, len(rule.Days))
	for _, d := range rule.Days {
		days = append(days, domain.WeekdayCode(d))
	}

	dates := make([]string, 0, len(rule.Dates))
	for _, d := range rule.Dates {
		dates = append(dates, d.String())
	}

	return &RuleResponse{
		ID:            rule.ID,
		CourtID:       rule.CourtID.String(),
		ConditionType: string(rule.Type),
		Days:          days,
		Dates:         dates,
		SlotFrom:      rule.Interval.From.String(),
		SlotTo:        rule.Interval.To.String(),
		Price:         rule.Price,
		CreatedAt:     rule.CreatedAt,
		UpdatedAt:     rule.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список правил в ответ
func FromDomainRuleList(rules []domain.PriceRule) *RuleListResponse {
	result := make([]RuleResponse, 0, len(rules))
	for i := range rules {
		result = append(result, *FromDomainRule(&rules[i]))
	}
	return &RuleListResponse{Rules: result, Total: len(result)}
}
