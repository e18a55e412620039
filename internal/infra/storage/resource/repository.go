package resource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduling/pkg/psqlbuilder"
)

const (
	resourcesTable      = "resources"
	blockedWindowsTable = "blocked_windows"
)

var resourceColumns = []string{
	"id",
	"name",
	"category",
	"is_active",
	"buffer_minutes",
	"working_hours",
	"created_at",
	"updated_at",
}

// Repository репозиторий ресурсов (станций) и закрытых интервалов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ресурс, расписание хранится в JSONB
func (r *Repository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	hours, err := json.Marshal(res.WorkingHours)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal working hours: %v", ErrWorkingHours, err)
	}

	query, args, err := psqlbuilder.Insert(resourcesTable).
		Columns("name", "category", "is_active", "buffer_minutes", "working_hours").
		Values(res.Name, res.Category, res.IsActive, res.BufferMinutes, hours).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает ресурс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From(resourcesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanResource(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %w", ErrScanRow, err)
	}

	return res, nil
}

// List получает ресурсы по фильтру, упорядоченные по ID
func (r *Repository) List(ctx context.Context, filter Filter) ([]*domain.Resource, error) {
	selectBuilder := psqlbuilder.Select(resourceColumns...).From(resourcesTable)

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": string(*filter.Category)})
	}
	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if len(filter.IDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": filter.IDs})
	}

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

// LockForUpdate блокирует строки ресурсов до конца транзакции
// Строки блокируются в порядке возрастания ID, чтобы параллельные бронирования
// нескольких станций не взаимоблокировались. Должен вызываться внутри транзакции
func (r *Repository) LockForUpdate(ctx context.Context, ids []int64) ([]*domain.Resource, error) {
	query, args, err := psqlbuilder.Select(resourceColumns...).
		From(resourcesTable).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LockForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "LockForUpdate", query, args)
}

// ListBlockedWindows получает закрытые интервалы, пересекающиеся с [from, to)
// Интервалы без resource_id закрывают все ресурсы и возвращаются всегда
func (r *Repository) ListBlockedWindows(ctx context.Context, resourceIDs []int64, from, to time.Time) ([]*domain.BlockedWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "resource_id", "start_at", "end_at", "reason", "created_at").
		From(blockedWindowsTable).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from})

	if len(resourceIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"resource_id": nil},
			squirrel.Eq{"resource_id": resourceIDs},
		})
	}

	query, args, err := selectBuilder.OrderBy("start_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedWindows - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.BlockedWindow, 0)
	for rows.Next() {
		var (
			window     domain.BlockedWindow
			resourceID sql.NullInt64
			reason     sql.NullString
			createdAt  sql.NullTime
		)
		if err := rows.Scan(&window.ID, &resourceID, &window.StartAt, &window.EndAt, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedWindows - scan row: %v", ErrScanRow, err)
		}
		if resourceID.Valid {
			window.ResourceID = &resourceID.Int64
		}
		window.Reason = reason.String
		window.CreatedAt = createdAt.Time
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		resources = append(resources, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return resources, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var (
		res                  domain.Resource
		hours                []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.Name,
		&res.Category,
		&res.IsActive,
		&res.BufferMinutes,
		&hours,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &res.WorkingHours); err != nil {
			return nil, fmt.Errorf("%w: resource=%d: %v", ErrWorkingHours, res.ID, err)
		}
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}
