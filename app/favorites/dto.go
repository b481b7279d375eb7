package favorites

import (
	"strings"

	"github.com/joefazee/atlas/internal/validator"
)

// ToggleRequest names the country to add or remove.
type ToggleRequest struct {
	Code string `json:"code"`
}

func (r *ToggleRequest) Validate(v *validator.Validator) bool {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	v.Check(validator.IsCountryCode(r.Code), "code", "code must be a 2 or 3 letter country code")
	return v.Valid()
}

// StatusResponse reports whether a country is a favorite.
type StatusResponse struct {
	Code     string `json:"code"`
	Favorite bool   `json:"favorite"`
}
