package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_available_dates"
)

const (
	msgMissingSubjectID = "ID животного обязателен"
	msgInvalidSubjectID = "некорректный ID животного"
	msgInvalidData      = "некорректные параметры запроса"
	msgSubjectNotFound  = "животное не найдено"
	msgUnsupported      = "ни один ресурс направления не обслуживает эту породу"
	msgUnavailable      = "настройки календаря недоступны"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/dates
// Query params: subjectId (required), category (опционально, grooming)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subjectIDStr := r.URL.Query().Get("subjectId")
	if subjectIDStr == "" {
		h.logger.Warn("GET /availability/dates - Missing subject ID")
		handlers.RespondBadRequest(w, msgMissingSubjectID)
		return
	}

	subjectID, err := strconv.ParseInt(subjectIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/dates - Invalid subject ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubjectID)
		return
	}

	useCaseReq := &getAvailableDates.Request{
		SubjectID: subjectID,
		Category:  domain.ServiceCategory(r.URL.Query().Get("category")),
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /availability/dates - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, getAvailableDates.ErrSubjectNotFound):
			h.logger.Warn("GET /availability/dates - Subject not found: subject_id=%d", subjectID)
			handlers.RespondNotFound(w, msgSubjectNotFound)

		case errors.Is(err, getAvailableDates.ErrUnsupportedCombination):
			h.logger.Warn("GET /availability/dates - Unsupported combination: subject_id=%d, category=%s",
				subjectID, useCaseReq.Category)
			handlers.RespondUnsupported(w, msgUnsupported)

		case errors.Is(err, getAvailableDates.ErrConfigurationUnavailable):
			h.logger.Error("GET /availability/dates - Calendar settings unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /availability/dates - Failed to get dates: subject_id=%d, error=%v", subjectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/dates - Dates retrieved successfully: subject_id=%d, dates_count=%d",
		subjectID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
