package durationrule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduling/pkg/psqlbuilder"
)

const table = "duration_rules"

var columns = []string{"id", "subject_type_id", "resource_id", "minutes", "reason", "created_at", "updated_at"}

// Repository репозиторий правил длительности услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил длительности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает правило для пары (тип животного, ресурс)
// Правило с minutes = NULL означает, что ресурс не обслуживает этот тип
func (r *Repository) Get(ctx context.Context, subjectTypeID, resourceID int64) (*domain.DurationRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"subject_type_id": subjectTypeID, "resource_id": resourceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*domain.DurationRule, error) {
	var (
		rule                 domain.DurationRule
		minutes              sql.NullInt64
		reason               sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&rule.ID,
		&rule.SubjectTypeID,
		&rule.ResourceID,
		&minutes,
		&reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if minutes.Valid {
		m := int(minutes.Int64)
		rule.Minutes = &m
	}
	if reason.Valid {
		rule.Reason = &reason.String
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
