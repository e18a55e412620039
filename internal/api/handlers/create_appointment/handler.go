package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonScheduling/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени, ожидается RFC3339"
	msgInvalidTimeRange     = "окончание записи должно быть позже начала"
	msgCustomerNotFound     = "клиент не найден"
	msgSubjectNotFound      = "животное не найдено у этого клиента"
	msgResourceNotFound     = "ресурс не найден"
	msgResourceInactive     = "ресурс выключен"
	msgDurationMismatch     = "длительность не совпадает с правилом, используйте ручной режим"
	msgUnsupported          = "ресурс не обслуживает эту породу, используйте ручной режим"
	msgOverlap              = "выбранное время пересекается с существующей записью"
	msgConfigurationMissing = "служебные данные для приватных записей недоступны"
	msgInvalidData          = "некорректные данные записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrOverlapConflict):
			h.logger.Warn("POST /appointments - Overlap: resources=%v, start=%s", req.ResourceIDs, req.StartAt)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, createAppointment.ErrUnsupportedCombination):
			h.logger.Warn("POST /appointments - Unsupported combination: resources=%v, subjects=%v", req.ResourceIDs, req.SubjectIDs)
			handlers.RespondUnsupported(w, msgUnsupported)

		case errors.Is(err, createAppointment.ErrDurationMismatch):
			h.logger.Warn("POST /appointments - Duration mismatch: resources=%v, start=%s", req.ResourceIDs, req.StartAt)
			handlers.RespondUnsupported(w, msgDurationMismatch)

		case errors.Is(err, createAppointment.ErrCustomerNotFound):
			h.logger.Warn("POST /appointments - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createAppointment.ErrSubjectNotFound):
			h.logger.Warn("POST /appointments - Subject not found: customer_id=%d, subjects=%v", req.CustomerID, req.SubjectIDs)
			handlers.RespondNotFound(w, msgSubjectNotFound)

		case errors.Is(err, createAppointment.ErrResourceNotFound):
			h.logger.Warn("POST /appointments - Resource not found: resources=%v", req.ResourceIDs)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createAppointment.ErrResourceInactive):
			h.logger.Warn("POST /appointments - Resource inactive: resources=%v", req.ResourceIDs)
			handlers.RespondBadRequest(w, msgResourceInactive)

		case errors.Is(err, createAppointment.ErrInvalidTimeRange):
			h.logger.Warn("POST /appointments - Invalid time range: start=%s, end=%v", req.StartAt, req.EndAt)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, domain.ErrConfigurationUnavailable):
			h.logger.Error("POST /appointments - Configuration unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgConfigurationMissing)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, resources=%v, error=%v",
				req.CustomerID, req.ResourceIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: ids=%v, customer_id=%d",
		result.AppointmentIDs, req.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
