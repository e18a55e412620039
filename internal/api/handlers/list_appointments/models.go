package list_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonScheduling/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
// from/to в формате RFC3339
func ToServiceRequest(query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{}

	if s := query.Get("resourceId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &id
	}

	if s := query.Get("customerId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CustomerID = &id
	}

	if s := query.Get("groupId"); s != "" {
		req.GroupID = &s
	}

	if s := query.Get("from"); s != "" {
		from, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if s := query.Get("to"); s != "" {
		to, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	if s := query.Get("includeInactive"); s != "" {
		includeInactive, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
