package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
	"github.com/m04kA/SMC-SalonScheduling/internal/service/resources/models"
)

// Service сервис справочника ресурсов (столы груминга, комнаты, залы)
type Service struct {
	resourceRepo ResourceRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(resourceRepo ResourceRepository, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// List возвращает ресурсы категории в порядке ID
// category == "" означает любую категорию
func (s *Service) List(ctx context.Context, category string, activeOnly bool) (*models.ResourceListResponse, error) {
	s.logger.Info("ListResources: category=%q, activeOnly=%t", category, activeOnly)

	filter := resourceRepo.Filter{ActiveOnly: activeOnly}
	if category != "" {
		c := domain.ServiceCategory(category)
		if !c.IsValid() {
			s.logger.Warn("ListResources: unknown category=%q", category)
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
		}
		filter.Category = &c
	}

	resources, err := s.resourceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListResources: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListResources - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListResources: found %d resources", len(resources))
	return models.FromDomainResourceList(resources), nil
}

// GetByID возвращает ресурс по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetResource: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetResource: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetResource - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainResource(resource), nil
}

// ListBlockedWindows возвращает закрытые периоды ресурса в интервале [from, to)
// Периоды, закрывающие весь салон, включаются всегда
func (s *Service) ListBlockedWindows(ctx context.Context, resourceID int64, from, to time.Time) (*models.BlockedWindowListResponse, error) {
	if !from.Before(to) {
		s.logger.Warn("ListBlockedWindows: invalid period from=%s to=%s", from, to)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if _, err := s.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	windows, err := s.resourceRepo.ListBlockedWindows(ctx, []int64{resourceID}, from, to)
	if err != nil {
		s.logger.Error("ListBlockedWindows: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: ListBlockedWindows - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedWindows(windows), nil
}
