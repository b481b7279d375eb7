package explorer

import (
	"time"

	"github.com/joefazee/atlas/models"
)

// FilterRequest replaces every predicate of a session at once.
type FilterRequest struct {
	Term     string `json:"term" binding:"max=100"`
	Region   string `json:"region" binding:"max=100"`
	Language string `json:"language" binding:"max=100"`
}

// TermRequest is one keystroke-level update of the free-text predicate.
type TermRequest struct {
	Term string `json:"term" binding:"max=100"`
}

// CountrySummary is the list-view projection of a country.
type CountrySummary struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	OfficialName string   `json:"official_name"`
	Region       string   `json:"region"`
	Subregion    string   `json:"subregion,omitempty"`
	Capital      string   `json:"capital,omitempty"`
	Population   int64    `json:"population"`
	Languages    []string `json:"languages"`
	Flag         string   `json:"flag,omitempty"`
	FlagURL      string   `json:"flag_url,omitempty"`
	FlagAlt      string   `json:"flag_alt,omitempty"`
}

// FacetsResponse lists the values a filter can be set to.
type FacetsResponse struct {
	Regions   []string `json:"regions"`
	Languages []string `json:"languages"`
}

// SessionResponse describes an explore session.
type SessionResponse struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	InputPending bool      `json:"input_pending"`
	Snapshot
}

func NewCountrySummary(c *models.Country) CountrySummary {
	return CountrySummary{
		Code:         c.Code(),
		Name:         c.Name.Common,
		OfficialName: c.Name.Official,
		Region:       c.Region,
		Subregion:    c.Subregion,
		Capital:      c.PrimaryCapital(),
		Population:   c.Population,
		Languages:    c.LanguageNames(),
		Flag:         c.Flag,
		FlagURL:      c.FlagURL(),
		FlagAlt:      c.Flags.Alt,
	}
}

func NewCountrySummaries(countries []models.Country) []CountrySummary {
	out := make([]CountrySummary, len(countries))
	for i := range countries {
		out[i] = NewCountrySummary(&countries[i])
	}
	return out
}

func newSessionResponse(s *Session) *SessionResponse {
	return &SessionResponse{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		InputPending: s.InputPending(),
		Snapshot:     s.Engine().Snapshot(),
	}
}

func newFacetsResponse(e *Engine) *FacetsResponse {
	return &FacetsResponse{
		Regions:   e.AvailableRegions(),
		Languages: e.AvailableLanguages(),
	}
}
