package courts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/venueservice"
)

// Service собирает снимок корта: данные сервиса площадок и локальные ценовые правила
type Service struct {
	venueClient VenueClient
	ruleRepo    RuleRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса кортов
func NewService(venueClient VenueClient, ruleRepo RuleRepository, logger Logger) *Service {
	return &Service{
		venueClient: venueClient,
		ruleRepo:    ruleRepo,
		logger:      logger,
	}
}

// GetCourt возвращает корт без ценовых правил (для проверки прав доступа)
func (s *Service) GetCourt(ctx context.Context, courtID uuid.UUID) (*domain.Court, error) {
	court, err := s.venueClient.GetCourt(ctx, courtID)
	if err != nil {
		if venueservice.IsNotFound(err) {
			s.logger.Warn("GetCourt: court id=%s not found", courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("GetCourt: failed to get court id=%s: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetCourt - venue service error: %v", ErrInternal, err)
	}
	return court, nil
}

// GetSnapshot возвращает корт вместе с ценовыми правилами в порядке создания
func (s *Service) GetSnapshot(ctx context.Context, courtID uuid.UUID) (*domain.Court, error) {
	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListByCourt(ctx, courtID)
	if err != nil {
		s.logger.Error("GetSnapshot: failed to list rules for court id=%s: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetSnapshot - repository error: %v", ErrInternal, err)
	}

	// Корт может прийти из кэша, поэтому правила кладём в копию
	snapshot := *court
	snapshot.Rules = rules

	return &snapshot, nil
}

// IsNotFound сообщает, что ошибка означает отсутствие корта
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourtNotFound)
}
