package get_available_times

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

// UseCase use case получения доступного времени на дату
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

// Execute выполняет use case получения доступного времени
// Возвращает все позиции (свободные и занятые) каждого совместимого ресурса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: subject=%d, category=%s, date=%s",
		req.SubjectID, req.Category, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	response := &Response{SubjectID: req.SubjectID, Category: req.Category, Date: date, Times: []domain.TimeAvailability{}}

	// 2. Получаем животное
	subject, err := uc.subjectRepo.GetSubject(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, subjectRepo.ErrSubjectNotFound) {
			uc.logger.Warn("GetAvailableTimes: subject id=%d not found", req.SubjectID)
			return nil, ErrSubjectNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get subject id=%d: %v", req.SubjectID, err)
		return nil, fmt.Errorf("%w: failed to get subject: %v", ErrInternal, err)
	}

	// 3. Проверяем дату по горизонту бронирования
	settings, err := uc.calendar.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: calendar settings unavailable: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConfigurationUnavailable, err)
	}

	now := uc.timeProvider.Now().In(uc.location)
	if !settings.InHorizon(date, now) {
		uc.logger.Info("GetAvailableTimes: date %s is outside the booking horizon (openDaysAhead=%d)",
			date.Format(domain.DateFormat), settings.OpenDaysAhead)
		return response, nil
	}

	// 4. Совместимые ресурсы и длительность на каждом
	resources, err := uc.resourceRepo.List(ctx, resourceRepo.Filter{Category: &req.Category, ActiveOnly: true})
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to list resources: %v", err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
	}
	if len(resources) == 0 {
		return response, nil
	}

	durations := make(map[int64]time.Duration, len(resources))
	resourceIDs := make([]int64, 0, len(resources))
	for _, res := range resources {
		result, err := uc.resolver.Resolve(ctx, subject.SubjectTypeID, res.ID)
		if err != nil {
			uc.logger.Error("GetAvailableTimes: duration lookup failed resource=%d: %v", res.ID, err)
			return nil, fmt.Errorf("%w: duration lookup failed: %v", ErrInternal, err)
		}
		if !result.IsSupported() {
			continue
		}
		durations[res.ID] = result.Duration()
		resourceIDs = append(resourceIDs, res.ID)
	}

	if len(resourceIDs) == 0 {
		uc.logger.Warn("GetAvailableTimes: subject type=%d is not serviced in category=%s", subject.SubjectTypeID, req.Category)
		return nil, ErrUnsupportedCombination
	}

	// 5. Записи и закрытые интервалы на день
	dayEnd := date.AddDate(0, 0, 1)

	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		ResourceIDs: resourceIDs,
		From:        &date,
		To:          &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	blocked, err := uc.resourceRepo.ListBlockedWindows(ctx, resourceIDs, date, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get blocked windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked windows: %v", ErrInternal, err)
	}

	// 6. Слоты каждого ресурса
	for _, res := range resources {
		duration, ok := durations[res.ID]
		if !ok {
			continue
		}

		slots, err := scheduling.ResourceDay(scheduling.DayRequest{
			Resource:     res,
			Date:         date,
			Duration:     duration,
			Step:         uc.step,
			Now:          now,
			Appointments: appointments,
			Blocked:      blocked,
		})
		if err != nil {
			uc.logger.Error("GetAvailableTimes: failed to compute slots resource=%d: %v", res.ID, err)
			return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}
		response.Times = append(response.Times, slots...)
	}

	scheduling.SortTimes(response.Times)

	uc.logger.Info("GetAvailableTimes: generated %d slots (%d free) for subject=%d, date=%s",
		len(response.Times), scheduling.CountFree(response.Times), req.SubjectID, date.Format(domain.DateFormat))

	return response, nil
}
