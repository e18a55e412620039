package accept_invite

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.InviteID <= 0 {
		return fmt.Errorf("%w: inviteID must be positive", ErrInvalidInput)
	}
	if req.SubjectID != nil && *req.SubjectID <= 0 {
		return fmt.Errorf("%w: subjectID must be positive", ErrInvalidInput)
	}
	return nil
}
