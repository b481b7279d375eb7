package restcountries

import (
	"fmt"

	"github.com/joefazee/atlas/models"
)

// GatewayError reports a failed call to the upstream API. Status is zero when no HTTP
// response was received (or it could not be read).
type GatewayError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("restcountries %s: %s returned status %d", e.Op, e.URL, e.Status)
	}
	return fmt.Sprintf("restcountries %s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is lets callers match on models.ErrNetworkFailure and models.ErrAPIStatus.
func (e *GatewayError) Is(target error) bool {
	switch target {
	case models.ErrNetworkFailure:
		return e.Status == 0
	case models.ErrAPIStatus:
		return e.Status != 0
	}
	return false
}
