package pricerule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

const table = "court_price_rules"

var columns = []string{
	"id",
	"court_id",
	"rule_type",
	"days",
	"dates",
	"slot_from",
	"slot_to",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий ценовых правил кортов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ценовых правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ценовое правило
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"court_id",
			"rule_type",
			"days",
			"dates",
			"slot_from",
			"slot_to",
			"price",
		).
		Values(
			rule.CourtID,
			string(rule.Type),
			pq.StringArray(encodeDays(rule.Days)),
			pq.StringArray(encodeDates(rule.Dates)),
			rule.Interval.From,
			rule.Interval.To,
			rule.Price,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает ценовое правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

// ListByCourt получает правила корта в порядке создания.
// Порядок важен: при совпадении правил одного уровня побеждает более позднее.
func (r *Repository) ListByCourt(ctx context.Context, courtID uuid.UUID) ([]domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourt - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourt - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.PriceRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCourt - scan row: %w", ErrScanRow, err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCourt - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

// Update обновляет правило. ID не меняется, поэтому правило сохраняет свою позицию в порядке создания.
func (r *Repository) Update(ctx context.Context, rule *domain.PriceRule) (*domain.PriceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("rule_type", string(rule.Type)).
		Set("days", pq.StringArray(encodeDays(rule.Days))).
		Set("dates", pq.StringArray(encodeDates(rule.Dates))).
		Set("slot_from", rule.Interval.From).
		Set("slot_to", rule.Interval.To).
		Set("price", rule.Price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rule.UpdatedAt = updatedAt
	return rule, nil
}

// Delete удаляет правило
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.PriceRule, error) {
	var (
		rule                 domain.PriceRule
		ruleType             string
		days, dates          pq.StringArray
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&rule.ID,
		&rule.CourtID,
		&ruleType,
		&days,
		&dates,
		&rule.Interval.From,
		&rule.Interval.To,
		&rule.Price,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Type = domain.RuleType(ruleType)
	if rule.Days, err = decodeDays(days); err != nil {
		return nil, err
	}
	if rule.Dates, err = decodeDates(dates); err != nil {
		return nil, err
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func encodeDays(days []time.Weekday) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, domain.WeekdayCode(d))
	}
	return out
}

func decodeDays(codes []string) ([]time.Weekday, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	out := make([]time.Weekday, 0, len(codes))
	for _, c := range codes {
		d, err := domain.ParseWeekday(c)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func encodeDates(dates []types.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}

func decodeDates(values []string) ([]types.Date, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]types.Date, 0, len(values))
	for _, v := range values {
		d, err := types.ParseDate(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
