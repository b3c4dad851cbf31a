package pricerules

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	ruleRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/pricerule"
	"github.com/m04kA/SMC-CourtBooking/internal/service/courts"
	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules/models"
)

// Service сервис для управления ценовыми правилами кортов
type Service struct {
	ruleRepo      RuleRepository
	courtProvider CourtProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса ценовых правил
func NewService(ruleRepo RuleRepository, courtProvider CourtProvider, logger Logger) *Service {
	return &Service{
		ruleRepo:      ruleRepo,
		courtProvider: courtProvider,
		logger:        logger,
	}
}

// Create создает ценовое правило корта
// Доступно только менеджерам корта
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Create: creating %s rule %s-%s for court=%s by user=%d",
		req.ConditionType, req.SlotFrom, req.SlotTo, req.CourtID, req.UserID)

	// 1. Валидируем входные данные
	rule, err := req.ToDomain(req.CourtID)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем права доступа (только менеджер корта)
	if err := s.checkManagerAccess(ctx, req.CourtID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Сохраняем правило
	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error for court=%s: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created rule id=%d for court=%s", created.ID, req.CourtID)
	return models.FromDomainRule(created), nil
}

// GetByID получает правило по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RuleResponse, error) {
	rule, err := s.getRule(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRule(rule), nil
}

// ListByCourt возвращает правила корта в порядке создания
func (s *Service) ListByCourt(ctx context.Context, courtID uuid.UUID) (*models.RuleListResponse, error) {
	s.logger.Info("ListByCourt: fetching rules for court=%s", courtID)

	rules, err := s.ruleRepo.ListByCourt(ctx, courtID)
	if err != nil {
		s.logger.Error("ListByCourt: repository error for court=%s: %v", courtID, err)
		return nil, fmt.Errorf("%w: ListByCourt - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByCourt: fetched %d rules for court=%s", len(rules), courtID)
	return models.FromDomainRuleList(rules), nil
}

// Update заменяет поля правила
// Правило сохраняет ID, а значит и позицию среди правил корта.
// Существующие бронирования не пересчитываются: их цены зафиксированы при создании.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Update: updating rule id=%d by user=%d", id, req.UserID)

	existing, err := s.getRule(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, existing.CourtID, req.UserID); err != nil {
		return nil, err
	}

	rule, err := req.ToDomain(existing.CourtID)
	if err != nil {
		s.logger.Warn("Update: validation failed for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	rule.ID = existing.ID
	rule.CreatedAt = existing.CreatedAt

	updated, err := s.ruleRepo.Update(ctx, rule)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated rule id=%d", id)
	return models.FromDomainRule(updated), nil
}

// Delete удаляет правило
// Доступно только менеджерам корта
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting rule id=%d by user=%d", id, userID)

	existing, err := s.getRule(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, existing.CourtID, userID); err != nil {
		return err
	}

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted rule id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getRule(ctx context.Context, op string, id int64) (*domain.PriceRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("%s: rule id=%d not found", op, id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("%s: repository error for rule id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return rule, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером корта
func (s *Service) checkManagerAccess(ctx context.Context, courtID uuid.UUID, userID int64) error {
	court, err := s.courtProvider.GetCourt(ctx, courtID)
	if err != nil {
		if courts.IsNotFound(err) {
			s.logger.Warn("checkManagerAccess: court id=%s not found", courtID)
			return ErrCourtNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get court id=%s: %v", courtID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get court: %v", ErrInternal, err)
	}

	if !court.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of court=%s", userID, courtID)
		return ErrAccessDenied
	}

	return nil
}
