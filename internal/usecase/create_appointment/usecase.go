package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/appointment"
	subjectRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/subject"
	"github.com/m04kA/SMC-SalonScheduling/internal/scheduling"
)

// UseCase use case создания записи (одиночной или группы на несколько ресурсов)
type UseCase struct {
	appointmentRepo      AppointmentRepository
	resourceRepo         ResourceRepository
	subjectRepo          SubjectRepository
	resolver             DurationResolver
	txManager            TransactionManager
	metrics              MetricsRecorder
	logger               Logger
	internalCustomerName string
	internalSubjectName  string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	resourceRepo ResourceRepository,
	subjectRepo SubjectRepository,
	resolver DurationResolver,
	txManager TransactionManager,
	metrics MetricsRecorder,
	internalCustomerName, internalSubjectName string,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:      appointmentRepo,
		resourceRepo:         resourceRepo,
		subjectRepo:          subjectRepo,
		resolver:             resolver,
		txManager:            txManager,
		metrics:              metrics,
		logger:               logger,
		internalCustomerName: internalCustomerName,
		internalSubjectName:  internalSubjectName,
	}
}

// Execute выполняет use case создания записи
// Проверка пересечений и вставка всех записей группы выполняются в одной сериализуемой транзакции:
// либо создаются все записи, либо ни одной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: kind=%s, customer=%d, subjects=%v, resources=%v, start=%s, end=%s, override=%t",
		req.Kind, req.CustomerID, req.SubjectIDs, req.ResourceIDs,
		req.StartAt.Format(time.RFC3339), formatOptional(req.EndAt), req.ManualOverride)

	// 1-2. Обязательные поля и порядок времени
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	var created []*domain.Appointment
	var endAt time.Time

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = nil

		// 3. Клиент и животные (для private - служебная пара)
		customerID, subjects, err := uc.resolveParticipants(txCtx, req)
		if err != nil {
			return err
		}

		// Блокируем ресурсы: параллельные записи на те же ресурсы ждут окончания транзакции
		resources, err := uc.lockResources(txCtx, req.ResourceIDs)
		if err != nil {
			return err
		}

		// 4. Длительность по правилу для (первое животное, первый ресурс)
		endAt, err = uc.resolveEnd(txCtx, req, subjects, resources)
		if err != nil {
			return err
		}

		// 5. Пересечения на каждом ресурсе группы
		if err := uc.checkOverlaps(txCtx, req.StartAt, endAt, resources); err != nil {
			return err
		}

		var groupID *string
		if len(resources) > 1 {
			id := uuid.NewString()
			groupID = &id
		}

		subjectIDs := make([]int64, 0, len(subjects))
		for _, s := range subjects {
			subjectIDs = append(subjectIDs, s.ID)
		}

		status := req.Status
		if status == "" {
			status = domain.AppointmentPending
		}

		targets := resourceTargets(resources)
		for _, resourceID := range targets {
			appointment := &domain.Appointment{
				ResourceID:     resourceID,
				StartAt:        req.StartAt,
				EndAt:          endAt,
				Status:         status,
				PaymentStatus:  domain.PaymentUnpaid,
				Kind:           req.Kind,
				CustomerID:     customerID,
				SubjectIDs:     subjectIDs,
				GroupID:        groupID,
				ManualOverride: req.ManualOverride,
				Notes:          req.Notes,
			}

			saved, err := uc.appointmentRepo.Create(txCtx, appointment)
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrOverlap) {
					uc.logger.Warn("CreateAppointment: exclusion constraint rejected the insert: %v", err)
					return ErrOverlapConflict
				}
				uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
				return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
			}
			created = append(created, saved)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrOverlapConflict) {
			uc.metrics.ObserveBookingConflict()
		}
		return nil, err
	}

	uc.metrics.ObserveAppointmentsCreated(string(req.Kind), len(created))

	response := &Response{
		AppointmentIDs:  make([]int64, 0, len(created)),
		StartAt:         req.StartAt,
		EndAt:           endAt,
		DurationMinutes: int(endAt.Sub(req.StartAt) / time.Minute),
		Appointments:    created,
	}
	for _, a := range created {
		response.AppointmentIDs = append(response.AppointmentIDs, a.ID)
	}
	if len(created) > 0 {
		response.GroupID = created[0].GroupID
	}

	uc.logger.Info("CreateAppointment: successfully created appointments ids=%v, group=%v",
		response.AppointmentIDs, formatGroup(response.GroupID))

	return response, nil
}

// resolveParticipants возвращает клиента и животных записи
func (uc *UseCase) resolveParticipants(ctx context.Context, req *Request) (int64, []*domain.Subject, error) {
	switch req.Kind {
	case domain.KindPrivate:
		customer, subject, err := uc.subjectRepo.EnsureInternal(ctx, uc.internalCustomerName, uc.internalSubjectName)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to provision internal customer: %v", err)
			return 0, nil, fmt.Errorf("%w: internal customer: %w", ErrConfigurationUnavailable, err)
		}
		return customer.ID, []*domain.Subject{subject}, nil

	case domain.KindBusiness, domain.KindEvent:
		customer, err := uc.subjectRepo.GetCustomer(ctx, req.CustomerID)
		if err != nil {
			if errors.Is(err, subjectRepo.ErrCustomerNotFound) {
				uc.logger.Warn("CreateAppointment: customer id=%d not found", req.CustomerID)
				return 0, nil, ErrCustomerNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", req.CustomerID, err)
			return 0, nil, fmt.Errorf("%w: failed to get customer: %w", ErrInternal, err)
		}
		if customer.IsInternal {
			return 0, nil, fmt.Errorf("%w: internal customer cannot book %s appointments", ErrInvalidInput, req.Kind)
		}

		found, err := uc.subjectRepo.GetSubjects(ctx, req.SubjectIDs)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get subjects %v: %v", req.SubjectIDs, err)
			return 0, nil, fmt.Errorf("%w: failed to get subjects: %w", ErrInternal, err)
		}

		subjects, err := validateSubjects(customer.ID, req.SubjectIDs, found)
		if err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return 0, nil, err
		}
		return customer.ID, subjects, nil

	default:
		return 0, nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, req.Kind)
	}
}

// lockResources блокирует ресурсы и проверяет, что все они существуют и активны
func (uc *UseCase) lockResources(ctx context.Context, ids []int64) ([]*domain.Resource, error) {
	if len(ids) == 0 {
		return []*domain.Resource{}, nil
	}

	locked, err := uc.resourceRepo.LockForUpdate(ctx, ids)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to lock resources %v: %v", ids, err)
		return nil, fmt.Errorf("%w: failed to lock resources: %w", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Resource, len(locked))
	for _, r := range locked {
		byID[r.ID] = r
	}

	// порядок запроса сохраняется: первый ресурс - основной
	resources := make([]*domain.Resource, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			uc.logger.Warn("CreateAppointment: resource id=%d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrResourceNotFound, id)
		}
		if !r.IsActive {
			uc.logger.Warn("CreateAppointment: resource id=%d is inactive", id)
			return nil, fmt.Errorf("%w: id=%d", ErrResourceInactive, id)
		}
		resources = append(resources, r)
	}

	return resources, nil
}

// resolveEnd возвращает окончание записи: заданное вызывающим или вычисленное по правилу
func (uc *UseCase) resolveEnd(ctx context.Context, req *Request, subjects []*domain.Subject, resources []*domain.Resource) (time.Time, error) {
	if req.ManualOverride || !req.Kind.UsesDurationRules() || len(resources) == 0 {
		return req.EndAt, nil
	}

	primarySubject := subjects[0]
	primaryResource := resources[0]

	result, err := uc.resolver.Resolve(ctx, primarySubject.SubjectTypeID, primaryResource.ID)
	if err != nil {
		uc.logger.Error("CreateAppointment: duration lookup failed subject=%d, resource=%d: %v",
			primarySubject.ID, primaryResource.ID, err)
		return time.Time{}, fmt.Errorf("%w: duration lookup failed: %w", ErrInternal, err)
	}

	if !result.IsSupported() {
		uc.logger.Warn("CreateAppointment: subject type=%d unsupported at resource=%d: %s",
			primarySubject.SubjectTypeID, primaryResource.ID, result.Reason)
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnsupportedCombination, result.Reason)
	}

	expected := req.StartAt.Add(result.Duration())
	if req.EndAt.IsZero() {
		return expected, nil
	}

	if !req.EndAt.Equal(expected) {
		uc.logger.Warn("CreateAppointment: duration mismatch, requested=%s, rule=%d minutes",
			req.EndAt.Sub(req.StartAt), result.Minutes)
		return time.Time{}, fmt.Errorf("%w: rule says %d minutes", ErrDurationMismatch, result.Minutes)
	}

	return req.EndAt, nil
}

// checkOverlaps проверяет, что интервал (с буфером ресурса) свободен на каждом ресурсе
func (uc *UseCase) checkOverlaps(ctx context.Context, start, end time.Time, resources []*domain.Resource) error {
	if len(resources) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(resources))
	var maxBuffer time.Duration
	for _, r := range resources {
		ids = append(ids, r.ID)
		if r.Buffer() > maxBuffer {
			maxBuffer = r.Buffer()
		}
	}

	from := start.Add(-maxBuffer)
	to := end.Add(maxBuffer)

	existing, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		ResourceIDs: ids,
		From:        &from,
		To:          &to,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
		return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	candidate := domain.Interval{Start: start, End: end}
	for _, r := range resources {
		conflicts := scheduling.Conflicts(candidate, r.ID, r.Buffer(), existing)
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateAppointment: resource=%d is taken by appointment id=%d (%s - %s)",
				r.ID, conflicts[0].ID, conflicts[0].StartAt.Format(time.RFC3339), conflicts[0].EndAt.Format(time.RFC3339))
			return fmt.Errorf("%w: resource id=%d", ErrOverlapConflict, r.ID)
		}
	}

	return nil
}

// resourceTargets возвращает ресурсы, на которые создаются записи; nil - запись без ресурса
func resourceTargets(resources []*domain.Resource) []*int64 {
	if len(resources) == 0 {
		return []*int64{nil}
	}
	targets := make([]*int64, 0, len(resources))
	for _, r := range resources {
		id := r.ID
		targets = append(targets, &id)
	}
	return targets
}

func formatOptional(t time.Time) string {
	if t.IsZero() {
		return "auto"
	}
	return t.Format(time.RFC3339)
}

func formatGroup(groupID *string) string {
	if groupID == nil {
		return "-"
	}
	return *groupID
}
