package create_appointment

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
)

// validateRequest проверяет обязательные поля и порядок времени до обращения к хранилищу
func validateRequest(req *Request) error {
	if !req.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, req.Kind)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.Kind.RequiresCustomer() {
		if req.CustomerID <= 0 {
			return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
		}
		if len(req.SubjectIDs) == 0 {
			return fmt.Errorf("%w: at least one subject is required", ErrInvalidInput)
		}
		if err := validateIDs("subjectIDs", req.SubjectIDs); err != nil {
			return err
		}
	}

	if req.Kind.RequiresResource() && len(req.ResourceIDs) == 0 {
		return fmt.Errorf("%w: at least one resource is required for %s appointments", ErrInvalidInput, req.Kind)
	}
	if len(req.ResourceIDs) > domain.MaxResourcesPerGroup {
		return fmt.Errorf("%w: at most %d resources per group", ErrInvalidInput, domain.MaxResourcesPerGroup)
	}
	if err := validateIDs("resourceIDs", req.ResourceIDs); err != nil {
		return err
	}

	// Окончание должно быть задано явно, если длительность не берётся из правила
	if req.EndAt.IsZero() && !autoEnd(req) {
		return fmt.Errorf("%w: endAt is required", ErrInvalidInput)
	}

	switch req.Status {
	case "", domain.AppointmentPending, domain.AppointmentApproved, domain.AppointmentMatched:
	default:
		return fmt.Errorf("%w: status %q cannot be used for a new appointment", ErrInvalidInput, req.Status)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if !req.EndAt.IsZero() {
		if err := validateTimeRange(req.StartAt, req.EndAt); err != nil {
			return err
		}
	}

	return nil
}

// autoEnd сообщает, вычисляется ли окончание по правилу длительности
func autoEnd(req *Request) bool {
	return !req.ManualOverride && req.Kind.UsesDurationRules() && len(req.ResourceIDs) > 0
}

// validateTimeRange проверяет, что окончание строго позже начала
func validateTimeRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	if end.Sub(start) > domain.MaxDurationMinutes*time.Minute {
		return fmt.Errorf("%w: appointment cannot be longer than %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}
	return nil
}

// validateIDs проверяет, что ID положительные и не повторяются
func validateIDs(field string, ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: %s must contain positive ids", ErrInvalidInput, field)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s contains duplicate id %d", ErrInvalidInput, field, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// validateSubjects проверяет, что все животные найдены и принадлежат клиенту
func validateSubjects(customerID int64, requested []int64, found []*domain.Subject) ([]*domain.Subject, error) {
	byID := make(map[int64]*domain.Subject, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	ordered := make([]*domain.Subject, 0, len(requested))
	for _, id := range requested {
		s, ok := byID[id]
		if !ok || s.CustomerID != customerID || s.IsInternal {
			return nil, fmt.Errorf("%w: subject id=%d", ErrSubjectNotFound, id)
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}
