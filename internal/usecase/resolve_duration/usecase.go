package resolve_duration

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	durationRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/durationrule"
	resourceRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/resource"
	subjectRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/subject"
)

const (
	reasonNoRule    = "no duration is defined for this subject type at this resource"
	reasonTombstone = "this resource does not service this subject type"
)

// UseCase use case определения длительности услуги
// Не хранит состояния между вызовами, результат зависит только от текущих правил
type UseCase struct {
	ruleRepo     DurationRuleRepository
	subjectRepo  SubjectRepository
	resourceRepo ResourceRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ruleRepo DurationRuleRepository,
	subjectRepo SubjectRepository,
	resourceRepo ResourceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		ruleRepo:     ruleRepo,
		subjectRepo:  subjectRepo,
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// Execute проверяет тип животного и ресурс, затем возвращает длительность для пары
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveDuration: subjectType=%d, resource=%d, key=%q", req.SubjectTypeID, req.ResourceID, req.SelectionKey)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveDuration: validation failed: %v", err)
		return nil, err
	}

	subjectType, err := uc.subjectRepo.GetSubjectType(ctx, req.SubjectTypeID)
	if err != nil {
		if errors.Is(err, subjectRepo.ErrSubjectTypeNotFound) {
			uc.logger.Warn("ResolveDuration: subject type id=%d not found", req.SubjectTypeID)
			return nil, ErrSubjectTypeNotFound
		}
		uc.logger.Error("ResolveDuration: failed to get subject type id=%d: %v", req.SubjectTypeID, err)
		return nil, fmt.Errorf("%w: failed to get subject type: %v", ErrInternal, err)
	}

	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("ResolveDuration: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("ResolveDuration: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	if !subjectType.IsActive || !resource.IsActive {
		uc.logger.Warn("ResolveDuration: inactive subjectType=%d (%t) or resource=%d (%t)",
			subjectType.ID, subjectType.IsActive, resource.ID, resource.IsActive)
		return nil, ErrInactive
	}

	result, err := uc.Resolve(ctx, req.SubjectTypeID, req.ResourceID)
	if err != nil {
		return nil, err
	}

	return &Response{
		SelectionKey: req.SelectionKey,
		Status:       result.Status,
		Minutes:      result.Minutes,
		Reason:       result.Reason,
	}, nil
}

// Resolve ищет правило длительности для пары (тип животного, ресурс)
// Отсутствие правила и правило-tombstone дают unsupported; ошибка чтения возвращается как ErrInternal
func (uc *UseCase) Resolve(ctx context.Context, subjectTypeID, resourceID int64) (domain.DurationResult, error) {
	rule, err := uc.ruleRepo.Get(ctx, subjectTypeID, resourceID)
	if err != nil {
		if errors.Is(err, durationRepo.ErrRuleNotFound) {
			return domain.Unsupported(reasonNoRule), nil
		}
		uc.logger.Error("ResolveDuration: failed to get rule subjectType=%d, resource=%d: %v", subjectTypeID, resourceID, err)
		return domain.DurationResult{}, fmt.Errorf("%w: failed to get duration rule: %w", ErrInternal, err)
	}

	if rule.IsTombstone() {
		reason := reasonTombstone
		if rule.Reason != nil && *rule.Reason != "" {
			reason = *rule.Reason
		}
		return domain.Unsupported(reason), nil
	}

	if *rule.Minutes <= 0 {
		uc.logger.Error("ResolveDuration: rule id=%d has non-positive minutes=%d", rule.ID, *rule.Minutes)
		return domain.DurationResult{}, fmt.Errorf("%w: rule id=%d has invalid minutes", ErrInternal, rule.ID)
	}

	return domain.Supported(*rule.Minutes), nil
}
