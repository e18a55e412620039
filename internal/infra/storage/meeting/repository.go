package meeting

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduling/pkg/psqlbuilder"
)

const (
	meetingsTable = "proposed_meetings"
	invitesTable  = "proposed_meeting_invites"
)

var (
	meetingColumns = []string{
		"id", "resource_id", "start_at", "end_at", "title", "manual_override",
		"status", "appointment_id", "created_at", "updated_at",
	}
	inviteColumns = []string{
		"id", "proposed_meeting_id", "customer_id", "subject_id", "status",
		"notification_count", "delivery_attempts", "last_error", "last_sent_at",
		"source", "source_category_id", "created_at", "updated_at",
	}
)

// Repository репозиторий предложенных встреч и приглашений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateMeeting создает предложенную встречу
func (r *Repository) CreateMeeting(ctx context.Context, meeting *domain.ProposedMeeting) (*domain.ProposedMeeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(meetingsTable).
		Columns("resource_id", "start_at", "end_at", "title", "manual_override", "status").
		Values(meeting.ResourceID, meeting.StartAt, meeting.EndAt, meeting.Title, meeting.ManualOverride, meeting.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateMeeting - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&meeting.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateMeeting - execute insert: %w", ErrExecQuery, err)
	}

	meeting.CreatedAt = createdAt.Time
	meeting.UpdatedAt = updatedAt.Time

	return meeting, nil
}

// GetMeeting получает встречу по ID
func (r *Repository) GetMeeting(ctx context.Context, id int64) (*domain.ProposedMeeting, error) {
	return r.getMeeting(ctx, id, "")
}

// GetMeetingForUpdate получает встречу по ID с блокировкой строки до конца транзакции
func (r *Repository) GetMeetingForUpdate(ctx context.Context, id int64) (*domain.ProposedMeeting, error) {
	return r.getMeeting(ctx, id, "FOR UPDATE")
}

// GetMeetingForShare получает встречу по ID с разделяемой блокировкой:
// отправки идут параллельно, а принятие приглашения (FOR UPDATE) ждёт их завершения
func (r *Repository) GetMeetingForShare(ctx context.Context, id int64) (*domain.ProposedMeeting, error) {
	return r.getMeeting(ctx, id, "FOR SHARE")
}

func (r *Repository) getMeeting(ctx context.Context, id int64, lock string) (*domain.ProposedMeeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(meetingColumns...).
		From(meetingsTable).
		Where(squirrel.Eq{"id": id})
	if lock != "" {
		selectBuilder = selectBuilder.Suffix(lock)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMeeting - build select query: %v", ErrBuildQuery, err)
	}

	meeting, err := scanMeeting(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMeeting - scan meeting: %w", ErrScanRow, err)
	}

	return meeting, nil
}

// MarkConverted переводит встречу в статус converted и привязывает созданную запись
func (r *Repository) MarkConverted(ctx context.Context, id, appointmentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(meetingsTable).
		Set("status", domain.MeetingConverted).
		Set("appointment_id", appointmentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkConverted - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "MarkConverted", query, args, ErrMeetingNotFound)
}

// DeleteMeeting удаляет встречу
func (r *Repository) DeleteMeeting(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(meetingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteMeeting - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "DeleteMeeting", query, args, ErrMeetingNotFound)
}

// CreateInvites добавляет приглашения во встречу
// Клиенты, уже приглашённые на эту встречу, пропускаются; возвращаются только созданные приглашения
func (r *Repository) CreateInvites(ctx context.Context, invites []*domain.ProposedMeetingInvite) ([]*domain.ProposedMeetingInvite, error) {
	if len(invites) == 0 {
		return []*domain.ProposedMeetingInvite{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(invitesTable).
		Columns("proposed_meeting_id", "customer_id", "subject_id", "status", "source", "source_category_id")

	for _, invite := range invites {
		insertBuilder = insertBuilder.Values(
			invite.ProposedMeetingID,
			invite.CustomerID,
			invite.SubjectID,
			invite.Status,
			invite.Source,
			invite.SourceCategoryID,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (proposed_meeting_id, customer_id) DO NOTHING RETURNING " + strings.Join(inviteColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateInvites - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateInvites - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanInvites(rows)
}

// GetInvite получает приглашение по ID
func (r *Repository) GetInvite(ctx context.Context, id int64) (*domain.ProposedMeetingInvite, error) {
	return r.getInvite(ctx, id, false)
}

// GetInviteForUpdate получает приглашение по ID с блокировкой строки до конца транзакции
func (r *Repository) GetInviteForUpdate(ctx context.Context, id int64) (*domain.ProposedMeetingInvite, error) {
	return r.getInvite(ctx, id, true)
}

func (r *Repository) getInvite(ctx context.Context, id int64, forUpdate bool) (*domain.ProposedMeetingInvite, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(inviteColumns...).
		From(invitesTable).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInvite - build select query: %v", ErrBuildQuery, err)
	}

	invite, err := scanInvite(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetInvite - scan invite: %w", ErrScanRow, err)
	}

	return invite, nil
}

// ListInvites получает приглашения встречи в порядке добавления
func (r *Repository) ListInvites(ctx context.Context, meetingID int64, filter InvitesFilter) ([]*domain.ProposedMeetingInvite, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(inviteColumns...).
		From(invitesTable).
		Where(squirrel.Eq{"proposed_meeting_id": meetingID})

	if filter.SourceCategoryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"source_category_id": *filter.SourceCategoryID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInvites - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInvites - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanInvites(rows)
}

// ListFailedForRetry получает приглашения открытых встреч, последняя отправка которых не удалась
// и число неудачных попыток меньше maxAttempts
func (r *Repository) ListFailedForRetry(ctx context.Context, maxAttempts, limit int) ([]*domain.ProposedMeetingInvite, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, 0, len(inviteColumns))
	for _, column := range inviteColumns {
		columns = append(columns, "i."+column)
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(invitesTable + " i").
		Join(meetingsTable + " m ON m.id = i.proposed_meeting_id").
		Where(squirrel.Eq{"m.status": string(domain.MeetingOpen)}).
		Where(squirrel.Eq{"i.status": []string{string(domain.InviteUninvited), string(domain.InviteSent)}}).
		Where(squirrel.NotEq{"i.last_error": nil}).
		Where(squirrel.Lt{"i.delivery_attempts": maxAttempts}).
		OrderBy("i.updated_at ASC", "i.id ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListFailedForRetry - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFailedForRetry - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanInvites(rows)
}

// MarkSent фиксирует успешную доставку: статус sent, счётчик уведомлений +1, ошибка сбрасывается
// Обновляются только приглашения uninvited/sent открытой встречи, иначе ErrInviteNotSendable.
// Возвращает новое значение счётчика
func (r *Repository) MarkSent(ctx context.Context, id int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(invitesTable).
		Set("status", domain.InviteSent).
		Set("notification_count", squirrel.Expr("notification_count + 1")).
		Set("delivery_attempts", 0).
		Set("last_error", nil).
		Set("last_sent_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(sendableCondition()).
		Suffix("RETURNING notification_count").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	var count int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, ErrInviteNotSendable
	}
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSent - execute update: %w", ErrExecQuery, err)
	}

	return count, nil
}

// MarkFailed фиксирует неудачную доставку, статус приглашения не меняется
// Закрытые приглашения не трогаются (ErrInviteNotSendable)
func (r *Repository) MarkFailed(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(invitesTable).
		Set("delivery_attempts", squirrel.Expr("delivery_attempts + 1")).
		Set("last_error", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(sendableCondition()).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "MarkFailed", query, args, ErrInviteNotSendable)
}

// sendableCondition приглашение ещё не принято и не устарело, встреча открыта
func sendableCondition() squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Eq{"status": []string{string(domain.InviteUninvited), string(domain.InviteSent)}},
		squirrel.Expr("proposed_meeting_id IN (SELECT id FROM "+meetingsTable+" WHERE status = ?)", string(domain.MeetingOpen)),
	}
}

// MarkAccepted переводит приглашение в статус accepted
func (r *Repository) MarkAccepted(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(invitesTable).
		Set("status", domain.InviteAccepted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkAccepted - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "MarkAccepted", query, args, ErrInviteNotFound)
}

// MarkSiblingsStale помечает stale все открытые приглашения встречи, кроме принятого
func (r *Repository) MarkSiblingsStale(ctx context.Context, meetingID, acceptedInviteID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(invitesTable).
		Set("status", domain.InviteStale).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"proposed_meeting_id": meetingID}).
		Where(squirrel.NotEq{"id": acceptedInviteID}).
		Where(squirrel.Eq{"status": []string{string(domain.InviteUninvited), string(domain.InviteSent)}}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkSiblingsStale - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSiblingsStale - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSiblingsStale - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// DeleteInvitesByMeeting удаляет все приглашения встречи
func (r *Repository) DeleteInvitesByMeeting(ctx context.Context, meetingID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(invitesTable).
		Where(squirrel.Eq{"proposed_meeting_id": meetingID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteInvitesByMeeting - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteInvitesByMeeting - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteInvitesByMeeting - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notFound error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (*domain.ProposedMeeting, error) {
	var (
		meeting                   domain.ProposedMeeting
		resourceID, appointmentID sql.NullInt64
		createdAt, updatedAt      sql.NullTime
	)

	err := row.Scan(
		&meeting.ID,
		&resourceID,
		&meeting.StartAt,
		&meeting.EndAt,
		&meeting.Title,
		&meeting.ManualOverride,
		&meeting.Status,
		&appointmentID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if resourceID.Valid {
		meeting.ResourceID = &resourceID.Int64
	}
	if appointmentID.Valid {
		meeting.AppointmentID = &appointmentID.Int64
	}
	meeting.CreatedAt = createdAt.Time
	meeting.UpdatedAt = updatedAt.Time

	return &meeting, nil
}

func scanInvite(row rowScanner) (*domain.ProposedMeetingInvite, error) {
	var (
		invite                      domain.ProposedMeetingInvite
		subjectID, sourceCategoryID sql.NullInt64
		lastError                   sql.NullString
		lastSentAt                  sql.NullTime
		createdAt, updatedAt        sql.NullTime
	)

	err := row.Scan(
		&invite.ID,
		&invite.ProposedMeetingID,
		&invite.CustomerID,
		&subjectID,
		&invite.Status,
		&invite.NotificationCount,
		&invite.DeliveryAttempts,
		&lastError,
		&lastSentAt,
		&invite.Source,
		&sourceCategoryID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if subjectID.Valid {
		invite.SubjectID = &subjectID.Int64
	}
	if sourceCategoryID.Valid {
		invite.SourceCategoryID = &sourceCategoryID.Int64
	}
	if lastError.Valid {
		invite.LastError = &lastError.String
	}
	if lastSentAt.Valid {
		invite.LastSentAt = &lastSentAt.Time
	}
	invite.CreatedAt = createdAt.Time
	invite.UpdatedAt = updatedAt.Time

	return &invite, nil
}

func scanInvites(rows *sql.Rows) ([]*domain.ProposedMeetingInvite, error) {
	invites := make([]*domain.ProposedMeetingInvite, 0)

	for rows.Next() {
		invite, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanInvites - scan row: %v", ErrScanRow, err)
		}
		invites = append(invites, invite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanInvites - rows error: %v", ErrScanRow, err)
	}

	return invites, nil
}
