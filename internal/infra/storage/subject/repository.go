package subject

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduling/pkg/psqlbuilder"
)

const (
	subjectsTable        = "subjects"
	subjectTypesTable    = "subject_types"
	customersTable       = "customers"
	categoriesTable      = "customer_categories"
	categoryMembersTable = "customer_category_members"
)

var (
	subjectColumns  = []string{"id", "customer_id", "subject_type_id", "name", "size_class", "is_internal", "created_at"}
	customerColumns = []string{"id", "name", "email", "phone", "is_internal", "created_at"}
)

// Repository репозиторий клиентов, животных и их типов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSubject получает животное по ID
func (r *Repository) GetSubject(ctx context.Context, id int64) (*domain.Subject, error) {
	subjects, err := r.GetSubjects(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, ErrSubjectNotFound
	}
	return subjects[0], nil
}

// GetSubjects получает животных по списку ID, отсутствующие ID пропускаются
func (r *Repository) GetSubjects(ctx context.Context, ids []int64) ([]*domain.Subject, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(subjectColumns...).
		From(subjectsTable).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSubjects - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubjects - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	subjects := make([]*domain.Subject, 0, len(ids))
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSubjects - scan row: %v", ErrScanRow, err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSubjects - rows error: %v", ErrScanRow, err)
	}

	return subjects, nil
}

// GetSubjectType получает тип животного по ID
func (r *Repository) GetSubjectType(ctx context.Context, id int64) (*domain.SubjectType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "is_active").
		From(subjectTypesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSubjectType - build select query: %v", ErrBuildQuery, err)
	}

	var subjectType domain.SubjectType
	err = executor.QueryRowContext(ctx, query, args...).Scan(&subjectType.ID, &subjectType.Name, &subjectType.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrSubjectTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSubjectType - scan row: %w", ErrScanRow, err)
	}

	return &subjectType, nil
}

// GetCustomer получает клиента по ID
func (r *Repository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	customers, err := r.GetCustomers(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, ErrCustomerNotFound
	}
	return customers[0], nil
}

// GetCustomers получает клиентов по списку ID, отсутствующие ID пропускаются
func (r *Repository) GetCustomers(ctx context.Context, ids []int64) ([]*domain.Customer, error) {
	query, args, err := psqlbuilder.Select(customerColumns...).
		From(customersTable).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomers - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryCustomers(ctx, "GetCustomers", query, args)
}

// GetCategory получает категорию клиентов по ID
func (r *Repository) GetCategory(ctx context.Context, id int64) (*domain.CustomerCategory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From(categoriesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCategory - build select query: %v", ErrBuildQuery, err)
	}

	var category domain.CustomerCategory
	err = executor.QueryRowContext(ctx, query, args...).Scan(&category.ID, &category.Name)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategory - scan row: %w", ErrScanRow, err)
	}

	return &category, nil
}

// ListCategoryMembers получает клиентов, входящих в категорию
func (r *Repository) ListCategoryMembers(ctx context.Context, categoryID int64) ([]*domain.Customer, error) {
	query, args, err := psqlbuilder.Select(
		"c.id", "c.name", "c.email", "c.phone", "c.is_internal", "c.created_at",
	).
		From(customersTable + " c").
		Join(categoryMembersTable + " m ON m.customer_id = c.id").
		Where(squirrel.Eq{"m.category_id": categoryID}).
		Where(squirrel.Eq{"c.is_internal": false}).
		OrderBy("c.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCategoryMembers - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryCustomers(ctx, "ListCategoryMembers", query, args)
}

// EnsureInternal возвращает служебного клиента и служебное животное для приватных записей,
// создавая их при первом обращении. Повторные вызовы переиспользуют существующие строки
func (r *Repository) EnsureInternal(ctx context.Context, customerName, subjectName string) (*domain.Customer, *domain.Subject, error) {
	customer, subject, err := r.getInternal(ctx)
	if err == nil {
		return customer, subject, nil
	}
	if err != ErrInternalNotFound {
		return nil, nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	// уникальные частичные индексы по is_internal защищают от дублей при параллельной вставке
	query, args, err := psqlbuilder.Insert(customersTable).
		Columns("name", "is_internal").
		Values(customerName, true).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()

	if err != nil {
		return nil, nil, fmt.Errorf("%w: EnsureInternal - build customer insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, nil, fmt.Errorf("%w: EnsureInternal - insert customer: %w", ErrExecQuery, err)
	}

	customerID, err := r.internalCustomerID(ctx)
	if err != nil {
		return nil, nil, err
	}

	query, args, err = psqlbuilder.Insert(subjectsTable).
		Columns("customer_id", "name", "is_internal").
		Values(customerID, subjectName, true).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()

	if err != nil {
		return nil, nil, fmt.Errorf("%w: EnsureInternal - build subject insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, nil, fmt.Errorf("%w: EnsureInternal - insert subject: %w", ErrExecQuery, err)
	}

	return r.getInternal(ctx)
}

func (r *Repository) internalCustomerID(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From(customersTable).
		Where(squirrel.Eq{"is_internal": true}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: internalCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrInternalNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: internalCustomerID - scan row: %w", ErrScanRow, err)
	}

	return id, nil
}

func (r *Repository) getInternal(ctx context.Context) (*domain.Customer, *domain.Subject, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From(customersTable).
		Where(squirrel.Eq{"is_internal": true}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, nil, fmt.Errorf("%w: getInternal - build customer query: %v", ErrBuildQuery, err)
	}

	customer, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil, ErrInternalNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: getInternal - scan customer: %w", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select(subjectColumns...).
		From(subjectsTable).
		Where(squirrel.Eq{"customer_id": customer.ID, "is_internal": true}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, nil, fmt.Errorf("%w: getInternal - build subject query: %v", ErrBuildQuery, err)
	}

	subject, err := scanSubject(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil, ErrInternalNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: getInternal - scan subject: %w", ErrScanRow, err)
	}

	return customer, subject, nil
}

func (r *Repository) queryCustomers(ctx context.Context, op, query string, args []interface{}) ([]*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return customers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var (
		subject       domain.Subject
		subjectTypeID sql.NullInt64
		sizeClass     sql.NullString
		createdAt     sql.NullTime
	)

	err := row.Scan(
		&subject.ID,
		&subject.CustomerID,
		&subjectTypeID,
		&subject.Name,
		&sizeClass,
		&subject.IsInternal,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	// у служебного животного типа нет
	subject.SubjectTypeID = subjectTypeID.Int64
	subject.SizeClass = sizeClass.String
	subject.CreatedAt = createdAt.Time

	return &subject, nil
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var (
		customer     domain.Customer
		email, phone sql.NullString
		createdAt    sql.NullTime
	)

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&email,
		&phone,
		&customer.IsInternal,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		customer.Email = &email.String
	}
	if phone.Valid {
		customer.Phone = &phone.String
	}
	customer.CreatedAt = createdAt.Time

	return &customer, nil
}
