package explorer

import (
	"context"
	"sync"

	"github.com/joefazee/atlas/models"
)

func country(code, common, official, region string, langs map[string]string) models.Country {
	return models.Country{
		Name:      models.CountryName{Common: common, Official: official},
		CCA3:      code,
		Region:    region,
		Languages: langs,
		Flags:     models.Flags{PNG: "https://flagcdn.com/" + code + ".png"},
	}
}

func sampleCountries() []models.Country {
	return []models.Country{
		country("FRA", "France", "French Republic", "Europe", map[string]string{"fra": "French"}),
		country("IND", "India", "Republic of India", "Asia", map[string]string{"eng": "English", "hin": "Hindi", "tam": "Tamil"}),
		country("DEU", "Germany", "Federal Republic of Germany", "Europe", map[string]string{"deu": "German"}),
		country("JPN", "Japan", "Japan", "Asia", map[string]string{"jpn": "Japanese"}),
		country("BEL", "Belgium", "Kingdom of Belgium", "Europe", map[string]string{"deu": "German", "fra": "French", "nld": "Dutch"}),
		country("IDN", "Indonesia", "Republic of Indonesia", "Asia", map[string]string{"ind": "Indonesian"}),
		country("ATA", "Antarctica", "Antarctica", "Antarctic", nil),
		country("XNW", "Nowhere", "Land of Nowhere", "", map[string]string{"eng": "English"}),
	}
}

func codes(countries []models.Country) []string {
	out := make([]string, len(countries))
	for i := range countries {
		out[i] = countries[i].CCA3
	}
	return out
}

// stubSource returns queued results in order, repeating the last one.
type stubSource struct {
	mu      sync.Mutex
	results []stubResult
	calls   int
	gate    chan struct{}
}

type stubResult struct {
	countries []models.Country
	err       error
}

func (s *stubSource) FetchAll(ctx context.Context) ([]models.Country, error) {
	s.mu.Lock()
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.calls++
	res := s.results[idx]
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return res.countries, res.err
}

func (s *stubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
