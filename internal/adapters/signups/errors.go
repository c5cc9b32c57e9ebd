package signups

import "fmt"

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("signups feed status %d: %s", e.Status, e.Body)
}
