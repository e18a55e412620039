package calendar

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduling/pkg/psqlbuilder"
)

const table = "calendar_settings"

// Repository репозиторий настроек календаря (одна строка с id = 1)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOrCreate возвращает настройки календаря, создавая строку со значениями по умолчанию при первом чтении
// Параллельные первые чтения безопасны: вставка идёт через ON CONFLICT DO NOTHING
func (r *Repository) GetOrCreate(ctx context.Context) (*domain.CalendarSettings, error) {
	settings, err := r.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if err != ErrSettingsNotFound {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	defaults := domain.DefaultCalendarSettings()

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "open_days_ahead", "display_start_time", "display_end_time").
		Values(defaults.ID, defaults.OpenDaysAhead, defaults.DisplayStartTime, defaults.DisplayEndTime).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - execute insert: %w", ErrExecQuery, err)
	}

	return r.Get(ctx)
}

// Get получает настройки календаря
func (r *Repository) Get(ctx context.Context) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"open_days_ahead",
		"display_start_time",
		"display_end_time",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": domain.CalendarSettingsSingletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.CalendarSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.OpenDaysAhead,
		&settings.DisplayStartTime,
		&settings.DisplayEndTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Update обновляет настройки календаря
// Поля с nil значениями не обновляются
func (r *Repository) Update(ctx context.Context, openDaysAhead *int, displayStart, displayEnd *string) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": domain.CalendarSettingsSingletonID})

	if openDaysAhead != nil {
		updateBuilder = updateBuilder.Set("open_days_ahead", *openDaysAhead)
	}
	if displayStart != nil {
		updateBuilder = updateBuilder.Set("display_start_time", *displayStart)
	}
	if displayEnd != nil {
		updateBuilder = updateBuilder.Set("display_end_time", *displayEnd)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, ErrSettingsNotFound
	}

	return r.Get(ctx)
}
