package meetings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/appointment"
	meetingRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/meeting"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
	subjectRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/subject"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/meetings/models"
)

// Service сервис предложенных встреч и списков приглашённых
// Рассылка и принятие приглашений выполняются use case'ами send_invites и accept_invite
type Service struct {
	meetingRepo     MeetingRepository
	customerRepo    CustomerRepository
	resourceRepo    ResourceRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	meetingRepo MeetingRepository,
	customerRepo CustomerRepository,
	resourceRepo ResourceRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		meetingRepo:     meetingRepo,
		customerRepo:    customerRepo,
		resourceRepo:    resourceRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает предложенную встречу в статусе open
func (s *Service) Create(ctx context.Context, req *models.CreateMeetingRequest) (*models.MeetingResponse, error) {
	s.logger.Info("CreateMeeting: resource=%v, start=%s, end=%s", req.ResourceID, req.StartAt, req.EndAt)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("CreateMeeting: validation failed: %v", err)
		return nil, err
	}

	if req.ResourceID != nil {
		resource, err := s.resourceRepo.GetByID(ctx, *req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				s.logger.Warn("CreateMeeting: resource id=%d not found", *req.ResourceID)
				return nil, ErrResourceNotFound
			}
			s.logger.Error("CreateMeeting: failed to get resource id=%d: %v", *req.ResourceID, err)
			return nil, fmt.Errorf("%w: CreateMeeting - get resource: %v", ErrInternal, err)
		}
		if !resource.IsActive {
			s.logger.Warn("CreateMeeting: resource id=%d is inactive", resource.ID)
			return nil, ErrResourceNotFound
		}
	}

	meeting, err := s.meetingRepo.CreateMeeting(ctx, &domain.ProposedMeeting{
		ResourceID:     req.ResourceID,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		Title:          req.Title,
		ManualOverride: req.ManualOverride,
		Status:         domain.MeetingOpen,
	})
	if err != nil {
		s.logger.Error("CreateMeeting: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateMeeting - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateMeeting: created meeting id=%d", meeting.ID)
	return models.FromDomainMeeting(meeting, nil), nil
}

// GetByID получает встречу вместе с приглашениями
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MeetingResponse, error) {
	meeting, err := s.getMeeting(ctx, "GetMeeting", id, false)
	if err != nil {
		return nil, err
	}

	invites, err := s.meetingRepo.ListInvites(ctx, id, meetingRepo.InvitesFilter{})
	if err != nil {
		s.logger.Error("GetMeeting: failed to list invites for meeting=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetMeeting - list invites: %v", ErrInternal, err)
	}

	return models.FromDomainMeeting(meeting, invites), nil
}

// AddInvites приглашает клиентов по списку ID
// Уже приглашённые клиенты пропускаются, новые приглашения создаются в статусе uninvited
func (s *Service) AddInvites(ctx context.Context, meetingID int64, req *models.AddInvitesRequest) (*models.AddInvitesResponse, error) {
	s.logger.Info("AddInvites: meeting=%d, customers=%d", meetingID, len(req.CustomerIDs))

	ids, err := validateCustomerIDs(req.CustomerIDs)
	if err != nil {
		s.logger.Warn("AddInvites: validation failed: %v", err)
		return nil, err
	}

	customers, err := s.customerRepo.GetCustomers(ctx, ids)
	if err != nil {
		s.logger.Error("AddInvites: failed to get customers: %v", err)
		return nil, fmt.Errorf("%w: AddInvites - get customers: %v", ErrInternal, err)
	}

	found := make(map[int64]bool, len(customers))
	for _, c := range customers {
		if !c.IsInternal {
			found[c.ID] = true
		}
	}
	missing := make([]int64, 0)
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		s.logger.Warn("AddInvites: customers not found: %v", missing)
		return nil, fmt.Errorf("%w: %v", ErrCustomerNotFound, missing)
	}

	return s.addInvites(ctx, "AddInvites", meetingID, ids, domain.SourceIndividual, nil)
}

// AddCategoryInvites приглашает всех клиентов категории
func (s *Service) AddCategoryInvites(ctx context.Context, meetingID int64, req *models.AddCategoryInvitesRequest) (*models.AddInvitesResponse, error) {
	s.logger.Info("AddCategoryInvites: meeting=%d, category=%d", meetingID, req.CategoryID)

	if req.CategoryID <= 0 {
		return nil, fmt.Errorf("%w: categoryId must be positive", ErrInvalidInput)
	}

	if _, err := s.customerRepo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, subjectRepo.ErrCategoryNotFound) {
			s.logger.Warn("AddCategoryInvites: category id=%d not found", req.CategoryID)
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("AddCategoryInvites: failed to get category id=%d: %v", req.CategoryID, err)
		return nil, fmt.Errorf("%w: AddCategoryInvites - get category: %v", ErrInternal, err)
	}

	members, err := s.customerRepo.ListCategoryMembers(ctx, req.CategoryID)
	if err != nil {
		s.logger.Error("AddCategoryInvites: failed to list members of category=%d: %v", req.CategoryID, err)
		return nil, fmt.Errorf("%w: AddCategoryInvites - list members: %v", ErrInternal, err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	return s.addInvites(ctx, "AddCategoryInvites", meetingID, ids, domain.SourceCategory, &req.CategoryID)
}

// addInvites создает приглашения под блокировкой встречи, чтобы не пересечься с принятием
func (s *Service) addInvites(
	ctx context.Context,
	op string,
	meetingID int64,
	customerIDs []int64,
	source domain.InviteSource,
	categoryID *int64,
) (*models.AddInvitesResponse, error) {
	var created []*domain.ProposedMeetingInvite

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		meeting, err := s.getMeeting(txCtx, op, meetingID, true)
		if err != nil {
			return err
		}
		if !meeting.IsOpen() {
			s.logger.Warn("%s: meeting id=%d is %s", op, meetingID, meeting.Status)
			return ErrMeetingClosed
		}

		invites := make([]*domain.ProposedMeetingInvite, 0, len(customerIDs))
		for _, customerID := range customerIDs {
			invites = append(invites, &domain.ProposedMeetingInvite{
				ProposedMeetingID: meetingID,
				CustomerID:        customerID,
				Status:            domain.InviteUninvited,
				Source:            source,
				SourceCategoryID:  categoryID,
			})
		}

		created, err = s.meetingRepo.CreateInvites(txCtx, invites)
		if err != nil {
			s.logger.Error("%s: failed to create invites for meeting=%d: %v", op, meetingID, err)
			return fmt.Errorf("%w: %s - create invites: %v", ErrInternal, op, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: meeting=%d, added=%d, skipped=%d", op, meetingID, len(created), len(customerIDs)-len(created))
	return &models.AddInvitesResponse{
		Added:   len(created),
		Skipped: len(customerIDs) - len(created),
		Invites: models.FromDomainInvites(created),
	}, nil
}

// Delete удаляет встречу вместе с приглашениями
// Встречу, по которой создана неотменённая запись, удалить нельзя
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteMeeting: id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		meeting, err := s.getMeeting(txCtx, "DeleteMeeting", id, true)
		if err != nil {
			return err
		}

		if meeting.AppointmentID != nil {
			appointment, err := s.appointmentRepo.GetByID(txCtx, *meeting.AppointmentID)
			switch {
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			case err != nil:
				s.logger.Error("DeleteMeeting: failed to get appointment id=%d: %v", *meeting.AppointmentID, err)
				return fmt.Errorf("%w: DeleteMeeting - get appointment: %v", ErrInternal, err)
			case appointment.IsActive():
				s.logger.Warn("DeleteMeeting: meeting id=%d has live appointment id=%d", id, appointment.ID)
				return ErrMeetingBooked
			}
		}

		removed, err := s.meetingRepo.DeleteInvitesByMeeting(txCtx, id)
		if err != nil {
			s.logger.Error("DeleteMeeting: failed to delete invites of meeting=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteMeeting - delete invites: %v", ErrInternal, err)
		}

		if err := s.meetingRepo.DeleteMeeting(txCtx, id); err != nil {
			if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
				return ErrMeetingNotFound
			}
			s.logger.Error("DeleteMeeting: repository error for id=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteMeeting - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("DeleteMeeting: deleted meeting id=%d with %d invites", id, removed)
		return nil
	})

	return err
}

func (s *Service) getMeeting(ctx context.Context, op string, id int64, forUpdate bool) (*domain.ProposedMeeting, error) {
	var (
		meeting *domain.ProposedMeeting
		err     error
	)
	if forUpdate {
		meeting, err = s.meetingRepo.GetMeetingForUpdate(ctx, id)
	} else {
		meeting, err = s.meetingRepo.GetMeeting(ctx, id)
	}

	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("%s: meeting id=%d not found", op, id)
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("%s: repository error for meeting id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return meeting, nil
}
