package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/appointments/models"
)

// Service сервис для чтения и отмены записей
// Создание записей выполняет use case create_appointment
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// List получает записи по фильтру в порядке начала
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: resource=%v, customer=%v, from=%v, to=%v",
		req.ResourceID, req.CustomerID, req.From, req.To)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("List: invalid period from=%s to=%s", req.From, req.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись; при WholeGroup отменяются все записи группы
// Отменённая запись перестаёт занимать ресурс
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d, wholeGroup=%t", id, req.UserID, req.WholeGroup)

	var cancelled int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.get(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if !appointment.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appointment.Status)
			return ErrCannotCancel
		}

		if req.WholeGroup && appointment.IsGrouped() {
			cancelled, err = s.appointmentRepo.CancelGroup(txCtx, *appointment.GroupID)
			if err != nil {
				s.logger.Error("Cancel: failed to cancel group=%s: %v", *appointment.GroupID, err)
				return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
			}
			return nil
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, domain.AppointmentCancelled); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		cancelled = 1
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled %d appointments starting from id=%d", cancelled, id)
	return &models.CancelResponse{Cancelled: cancelled}, nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}
