package get_available_times

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	getAvailableTimes "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_available_times"
)

const (
	msgMissingSubjectID = "ID животного обязателен"
	msgMissingDate      = "дата обязательна"
	msgInvalidParams    = "некорректные параметры: subjectId - число, date - YYYY-MM-DD"
	msgInvalidData      = "некорректные параметры запроса"
	msgSubjectNotFound  = "животное не найдено"
	msgUnsupported      = "ни один ресурс направления не обслуживает эту породу"
	msgUnavailable      = "настройки календаря недоступны"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/times
// Query params: subjectId (required), date (required, YYYY-MM-DD), category (опционально, grooming)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	subjectIDStr := query.Get("subjectId")
	if subjectIDStr == "" {
		h.logger.Warn("GET /availability/times - Missing subject ID")
		handlers.RespondBadRequest(w, msgMissingSubjectID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/times - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(subjectIDStr, query.Get("category"), dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/times - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /availability/times - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, getAvailableTimes.ErrSubjectNotFound):
			h.logger.Warn("GET /availability/times - Subject not found: subject_id=%d", useCaseReq.SubjectID)
			handlers.RespondNotFound(w, msgSubjectNotFound)

		case errors.Is(err, getAvailableTimes.ErrUnsupportedCombination):
			h.logger.Warn("GET /availability/times - Unsupported combination: subject_id=%d, category=%s",
				useCaseReq.SubjectID, useCaseReq.Category)
			handlers.RespondUnsupported(w, msgUnsupported)

		case errors.Is(err, getAvailableTimes.ErrConfigurationUnavailable):
			h.logger.Error("GET /availability/times - Calendar settings unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /availability/times - Failed to get times: subject_id=%d, date=%s, error=%v",
				useCaseReq.SubjectID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability/times - Times retrieved successfully: subject_id=%d, date=%s, slots_count=%d",
		useCaseReq.SubjectID, dateStr, len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, response)
}
