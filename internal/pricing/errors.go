package pricing

import (
	"errors"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrEmptySelection возвращается, если не выбран ни один слот
	ErrEmptySelection = errors.New("pricing: no slots selected")

	// ErrInvalidInterval возвращается для слота, у которого начало не раньше конца
	ErrInvalidInterval = domain.ErrInvalidInterval

	// ErrOverlap возвращается, если выбранные слоты пересекаются
	ErrOverlap = errors.New("pricing: selected slots overlap")
)
