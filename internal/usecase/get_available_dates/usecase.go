package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
	subjectRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/subject"
	"github.com/m04kA/SMC-SalonScheduling/internal/scheduling"
)

// UseCase use case получения доступных дат в горизонте бронирования
// Только чтение: блокировок не берёт, результат носит справочный характер
type UseCase struct {
	subjectRepo     SubjectRepository
	resourceRepo    ResourceRepository
	appointmentRepo AppointmentRepository
	calendar        CalendarSettingsProvider
	resolver        DurationResolver
	timeProvider    TimeProvider
	logger          Logger
	location        *time.Location
	step            time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	subjectRepo SubjectRepository,
	resourceRepo ResourceRepository,
	appointmentRepo AppointmentRepository,
	calendar CalendarSettingsProvider,
	resolver DurationResolver,
	location *time.Location,
	stepMinutes int,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		subjectRepo:     subjectRepo,
		resourceRepo:    resourceRepo,
		appointmentRepo: appointmentRepo,
		calendar:        calendar,
		resolver:        resolver,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		location:        location,
		step:            time.Duration(stepMinutes) * time.Minute,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

type plan struct {
	resource *domain.Resource
	duration time.Duration
}

// Execute выполняет use case получения доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: subject=%d, category=%s", req.SubjectID, req.Category)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	response := &Response{SubjectID: req.SubjectID, Category: req.Category, Dates: []domain.DateAvailability{}}

	// 2. Получаем животное
	subject, err := uc.subjectRepo.GetSubject(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, subjectRepo.ErrSubjectNotFound) {
			uc.logger.Warn("GetAvailableDates: subject id=%d not found", req.SubjectID)
			return nil, ErrSubjectNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get subject id=%d: %v", req.SubjectID, err)
		return nil, fmt.Errorf("%w: failed to get subject: %v", ErrInternal, err)
	}

	// 3. Получаем актуальные настройки календаря
	settings, err := uc.calendar.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableDates: calendar settings unavailable: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConfigurationUnavailable, err)
	}

	// openDaysAhead = 0: ни одна дата не предлагается
	if settings.IsBookingClosed() {
		uc.logger.Info("GetAvailableDates: booking is closed (openDaysAhead=0)")
		return response, nil
	}

	now := uc.timeProvider.Now().In(uc.location)
	first, last := settings.Horizon(now)

	// 4. Подбираем совместимые ресурсы и длительность на каждом
	plans, err := uc.planResources(ctx, subject, req.Category)
	if err != nil {
		return nil, err
	}

	dates := scheduling.HorizonDates(first, last)

	if len(plans) == 0 {
		for _, date := range dates {
			response.Dates = append(response.Dates, domain.DateAvailability{Date: date})
		}
		return response, nil
	}

	// 5. Загружаем записи и закрытые интервалы на весь горизонт
	resourceIDs := make([]int64, 0, len(plans))
	for _, p := range plans {
		resourceIDs = append(resourceIDs, p.resource.ID)
	}
	rangeEnd := last.AddDate(0, 0, 1)

	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		ResourceIDs: resourceIDs,
		From:        &first,
		To:          &rangeEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	blocked, err := uc.resourceRepo.ListBlockedWindows(ctx, resourceIDs, first, rangeEnd)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get blocked windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked windows: %v", ErrInternal, err)
	}

	// 6. Считаем свободные позиции по дням
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		capacity := 0
		for _, p := range plans {
			slots, err := scheduling.ResourceDay(scheduling.DayRequest{
				Resource:     p.resource,
				Date:         date,
				Duration:     p.duration,
				Step:         uc.step,
				Now:          now,
				Appointments: appointments,
				Blocked:      blocked,
			})
			if err != nil {
				uc.logger.Error("GetAvailableDates: failed to compute slots resource=%d: %v", p.resource.ID, err)
				return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
			}
			capacity += scheduling.CountFree(slots)
		}

		response.Dates = append(response.Dates, domain.DateAvailability{
			Date:              date,
			IsAvailable:       capacity > 0,
			RemainingCapacity: capacity,
		})
	}

	uc.logger.Info("GetAvailableDates: computed %d dates for subject=%d, category=%s", len(response.Dates), req.SubjectID, req.Category)

	return response, nil
}

// planResources возвращает активные ресурсы направления, на которых тип животного обслуживается
func (uc *UseCase) planResources(ctx context.Context, subject *domain.Subject, category domain.ServiceCategory) ([]plan, error) {
	resources, err := uc.resourceRepo.List(ctx, resourceRepo.Filter{Category: &category, ActiveOnly: true})
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list resources: %v", err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
	}

	plans := make([]plan, 0, len(resources))
	for _, res := range resources {
		result, err := uc.resolver.Resolve(ctx, subject.SubjectTypeID, res.ID)
		if err != nil {
			uc.logger.Error("GetAvailableDates: duration lookup failed resource=%d: %v", res.ID, err)
			return nil, fmt.Errorf("%w: duration lookup failed: %v", ErrInternal, err)
		}
		if !result.IsSupported() {
			continue
		}
		plans = append(plans, plan{resource: res, duration: result.Duration()})
	}

	if len(resources) > 0 && len(plans) == 0 {
		uc.logger.Warn("GetAvailableDates: subject type=%d is not serviced in category=%s", subject.SubjectTypeID, category)
		return nil, ErrUnsupportedCombination
	}

	return plans, nil
}
