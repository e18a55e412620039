package resolve_duration

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	resolveDuration "github.com/m04kA/SMC-SalonScheduling/internal/usecase/resolve_duration"
)

const (
	msgInvalidParams      = "некорректные параметры: subjectTypeId и resourceId обязательны"
	msgSubjectTypeMissing = "порода не найдена"
	msgResourceMissing    = "ресурс не найден"
	msgInactive           = "порода или ресурс выключены"
	msgInvalidData        = "некорректные параметры запроса"
	msgIndeterminate      = "не удалось определить длительность, повторите запрос"
)

type Handler struct {
	useCase ResolveDurationUseCase
	logger  Logger
}

func NewHandler(useCase ResolveDurationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/durations
// Query params: subjectTypeId, resourceId (required), selectionKey (возвращается без изменений)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(query.Get("subjectTypeId"), query.Get("resourceId"), query.Get("selectionKey"))
	if err != nil {
		h.logger.Warn("GET /durations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveDuration.ErrSubjectTypeNotFound):
			h.logger.Warn("GET /durations - Subject type not found: subject_type_id=%d", useCaseReq.SubjectTypeID)
			handlers.RespondNotFound(w, msgSubjectTypeMissing)

		case errors.Is(err, resolveDuration.ErrResourceNotFound):
			h.logger.Warn("GET /durations - Resource not found: resource_id=%d", useCaseReq.ResourceID)
			handlers.RespondNotFound(w, msgResourceMissing)

		case errors.Is(err, resolveDuration.ErrInactive):
			h.logger.Warn("GET /durations - Inactive: subject_type_id=%d, resource_id=%d",
				useCaseReq.SubjectTypeID, useCaseReq.ResourceID)
			handlers.RespondBadRequest(w, msgInactive)

		case errors.Is(err, resolveDuration.ErrInvalidInput):
			h.logger.Warn("GET /durations - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			// Ошибка чтения правила: значение по умолчанию не подставляется
			h.logger.Error("GET /durations - Lookup failed: subject_type_id=%d, resource_id=%d, error=%v",
				useCaseReq.SubjectTypeID, useCaseReq.ResourceID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgIndeterminate)
		}
		return
	}

	h.logger.Info("GET /durations - Duration resolved: subject_type_id=%d, resource_id=%d, status=%s, minutes=%d",
		useCaseReq.SubjectTypeID, useCaseReq.ResourceID, result.Status, result.Minutes)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
