package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/calendar/models"
	"github.com/m04kA/SMC-SalonScheduling/pkg/types"
)

// Service сервис настроек календаря (горизонт записи и часы отображения)
type Service struct {
	settingsRepo SettingsRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек календаря
func NewService(settingsRepo SettingsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get возвращает последние сохранённые настройки
// При первом чтении сохраняет значения по умолчанию (30 дней, 08:00-20:00)
func (s *Service) Get(ctx context.Context) (*domain.CalendarSettings, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		s.logger.Error("GetCalendarSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return settings, nil
}

// Update обновляет настройки календаря
// Проверка start < end выполняется по итоговым значениям с учётом неизменённых полей
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateCalendarSettings: openDaysAhead=%v, displayStart=%v, displayEnd=%v",
		formatInt(req.OpenDaysAhead), formatString(req.DisplayStartTime), formatString(req.DisplayEndTime))

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("UpdateCalendarSettings: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.CalendarSettings

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.settingsRepo.GetOrCreate(txCtx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		start, end := current.DisplayStartTime, current.DisplayEndTime
		if req.DisplayStartTime != nil {
			start = types.TimeString(*req.DisplayStartTime)
		}
		if req.DisplayEndTime != nil {
			end = types.TimeString(*req.DisplayEndTime)
		}
		if !start.IsBefore(end) {
			return fmt.Errorf("%w: displayStartTime %s must be before displayEndTime %s", ErrInvalidInput, start, end)
		}

		updated, err = s.settingsRepo.Update(txCtx, req.OpenDaysAhead, req.DisplayStartTime, req.DisplayEndTime)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			s.logger.Warn("UpdateCalendarSettings: %v", err)
		} else {
			s.logger.Error("UpdateCalendarSettings: failed: %v", err)
		}
		return nil, err
	}

	s.logger.Info("UpdateCalendarSettings: openDaysAhead=%d, display=%s-%s",
		updated.OpenDaysAhead, updated.DisplayStartTime, updated.DisplayEndTime)
	return models.FromDomainSettings(updated), nil
}

// validateUpdate проверяет диапазон горизонта и формат времени
func validateUpdate(req *models.UpdateSettingsRequest) error {
	if req.OpenDaysAhead == nil && req.DisplayStartTime == nil && req.DisplayEndTime == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.OpenDaysAhead != nil {
		if *req.OpenDaysAhead < domain.MinOpenDaysAhead || *req.OpenDaysAhead > domain.MaxOpenDaysAhead {
			return fmt.Errorf("%w: openDaysAhead must be between %d and %d",
				ErrInvalidInput, domain.MinOpenDaysAhead, domain.MaxOpenDaysAhead)
		}
	}

	for field, value := range map[string]*string{
		"displayStartTime": req.DisplayStartTime,
		"displayEndTime":   req.DisplayEndTime,
	} {
		if value == nil {
			continue
		}
		ts, err := types.NewTimeStringFromString(*value)
		if err != nil {
			return fmt.Errorf("%w: %s must be HH:MM: %v", ErrInvalidInput, field, err)
		}
		*value = ts.String()
	}

	return nil
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func formatString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
