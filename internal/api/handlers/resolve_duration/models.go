package resolve_duration

import (
	"strconv"

	resolveDuration "github.com/m04kA/SMC-SalonScheduling/internal/usecase/resolve_duration"
)

// DurationResponse HTTP response model
// status = unsupported означает, что ресурс не обслуживает породу; minutes тогда 0
type DurationResponse struct {
	SelectionKey string `json:"selectionKey"`
	Status       string `json:"status"`
	Minutes      int    `json:"minutes"`
	Reason       string `json:"reason,omitempty"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(subjectTypeIDStr, resourceIDStr, selectionKey string) (*resolveDuration.Request, error) {
	subjectTypeID, err := strconv.ParseInt(subjectTypeIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	return &resolveDuration.Request{
		SubjectTypeID: subjectTypeID,
		ResourceID:    resourceID,
		SelectionKey:  selectionKey,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveDuration.Response) *DurationResponse {
	return &DurationResponse{
		SelectionKey: resp.SelectionKey,
		Status:       string(resp.Status),
		Minutes:      resp.Minutes,
		Reason:       resp.Reason,
	}
}
