package countries

import (
	"sort"

	"github.com/joefazee/atlas/internal/formatter"
	"github.com/joefazee/atlas/models"
)

// BorderCountry is a neighbour resolved to its display name.
type BorderCountry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CountryDetail is the detail-view projection of a country.
type CountryDetail struct {
	Code            string          `json:"code"`
	Alpha2          string          `json:"alpha2,omitempty"`
	Name            string          `json:"name"`
	OfficialName    string          `json:"official_name"`
	NativeNames     []string        `json:"native_names,omitempty"`
	Region          string          `json:"region"`
	Subregion       string          `json:"subregion,omitempty"`
	Capitals        []string        `json:"capitals"`
	Population      int64           `json:"population"`
	PopulationLabel string          `json:"population_label"`
	Area            float64         `json:"area"`
	AreaLabel       string          `json:"area_label"`
	Density         string          `json:"density_per_km2"`
	CallingCode     string          `json:"calling_code,omitempty"`
	Languages       []string        `json:"languages"`
	Currencies      []string        `json:"currencies"`
	Timezones       []string        `json:"timezones,omitempty"`
	Continents      []string        `json:"continents,omitempty"`
	TopLevelDomains []string        `json:"tld,omitempty"`
	Borders         []BorderCountry `json:"borders"`
	Landlocked      bool            `json:"landlocked"`
	UNMember        bool            `json:"un_member"`
	Independent     *bool           `json:"independent,omitempty"`
	DrivingSide     string          `json:"driving_side,omitempty"`
	Flag            string          `json:"flag,omitempty"`
	FlagURL         string          `json:"flag_url,omitempty"`
	FlagAlt         string          `json:"flag_alt,omitempty"`
	Maps            models.Maps     `json:"maps"`
}

// NewCountryDetail projects c. names maps border codes to display names; codes
// missing from it are shown as the code itself.
func NewCountryDetail(c *models.Country, names map[string]string) *CountryDetail {
	borders := make([]BorderCountry, 0, len(c.Borders))
	for _, code := range c.Borders {
		name, ok := names[code]
		if !ok {
			name = code
		}
		borders = append(borders, BorderCountry{Code: code, Name: name})
	}

	var native []string
	for _, n := range c.Name.NativeName {
		if n.Common != "" && n.Common != c.Name.Common {
			native = append(native, n.Common)
		}
	}

	capitals := c.Capital
	if capitals == nil {
		capitals = []string{}
	}

	return &CountryDetail{
		Code:            c.Code(),
		Alpha2:          c.CCA2,
		Name:            c.Name.Common,
		OfficialName:    c.Name.Official,
		NativeNames:     dedupeSorted(native),
		Region:          c.Region,
		Subregion:       c.Subregion,
		Capitals:        capitals,
		Population:      c.Population,
		PopulationLabel: formatter.Population(c.Population),
		Area:            c.Area,
		AreaLabel:       formatter.Area(c.Area),
		Density:         formatter.Density(c.Population, c.Area).StringFixed(2),
		CallingCode:     formatter.CallingCode(c.CCA2),
		Languages:       nonNil(c.LanguageNames()),
		Currencies:      nonNil(c.CurrencyNames()),
		Timezones:       c.Timezones,
		Continents:      c.Continents,
		TopLevelDomains: c.TLD,
		Borders:         borders,
		Landlocked:      c.Landlocked,
		UNMember:        c.UNMember,
		Independent:     c.Independent,
		DrivingSide:     c.Car.Side,
		Flag:            c.Flag,
		FlagURL:         c.FlagURL(),
		FlagAlt:         c.Flags.Alt,
		Maps:            c.Maps,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func dedupeSorted(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	sort.Strings(s)
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
