package booking

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrForbidden         = errors.New("action not permitted for this actor")
)

// ValidationErrors maps wizard field names to their failure messages
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return "booking validation failed"
}
