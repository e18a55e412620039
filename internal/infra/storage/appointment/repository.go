package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduling/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"resource_id",
	"start_at",
	"end_at",
	"status",
	"payment_status",
	"kind",
	"customer_id",
	"subject_ids",
	"group_id",
	"manual_override",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями (appointments)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её.
// Создание записей группы должно выполняться в одной транзакции вместе с проверкой пересечений
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"resource_id",
			"start_at",
			"end_at",
			"status",
			"payment_status",
			"kind",
			"customer_id",
			"subject_ids",
			"group_id",
			"manual_override",
			"notes",
		).
		Values(
			appointment.ResourceID,
			appointment.StartAt,
			appointment.EndAt,
			appointment.Status,
			appointment.PaymentStatus,
			appointment.Kind,
			appointment.CustomerID,
			pq.Array(appointment.SubjectIDs),
			appointment.GroupID,
			appointment.ManualOverride,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create - resource=%v: %w", ErrOverlap, appointment.ResourceID, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// List получает записи с гибкой фильтрацией
// Пересечение с периодом: start_at < To AND end_at > From (полуоткрытые интервалы)
//
// Примеры использования:
//
// 1. Активные записи станций на день (для проверки пересечений):
//    filter := domain.AppointmentsFilter{ResourceIDs: []int64{1, 2}, From: &dayStart, To: &dayEnd}
//
// 2. Все записи группы, включая отменённые:
//    filter := domain.AppointmentsFilter{GroupID: &groupID, IncludeInactive: true}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if len(filter.ResourceIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": filter.ResourceIDs})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.GroupID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"group_id": *filter.GroupID})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.AppointmentCancelled)})
	}

	query, args, err := selectBuilder.OrderBy("start_at ASC", "resource_id ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// CancelGroup отменяет все активные записи группы, возвращает количество отменённых
func (r *Repository) CancelGroup(ctx context.Context, groupID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.AppointmentCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"group_id": groupID}).
		Where(squirrel.NotEq{"status": string(domain.AppointmentCancelled)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelGroup - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelGroup - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelGroup - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appointment          domain.Appointment
		resourceID           sql.NullInt64
		groupID, notes       sql.NullString
		subjectIDs           pq.Int64Array
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appointment.ID,
		&resourceID,
		&appointment.StartAt,
		&appointment.EndAt,
		&appointment.Status,
		&appointment.PaymentStatus,
		&appointment.Kind,
		&appointment.CustomerID,
		&subjectIDs,
		&groupID,
		&appointment.ManualOverride,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if resourceID.Valid {
		appointment.ResourceID = &resourceID.Int64
	}
	if groupID.Valid {
		appointment.GroupID = &groupID.String
	}
	if notes.Valid {
		appointment.Notes = &notes.String
	}
	appointment.SubjectIDs = []int64(subjectIDs)
	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
