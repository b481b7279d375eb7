package models

import (
	"sort"
	"strings"
)

// CountryName holds the display names of a country.
type CountryName struct {
	Common     string                `json:"common"`
	Official   string                `json:"official"`
	NativeName map[string]NativeName `json:"nativeName,omitempty"`
}

type NativeName struct {
	Official string `json:"official"`
	Common   string `json:"common"`
}

type Flags struct {
	PNG string `json:"png,omitempty"`
	SVG string `json:"svg,omitempty"`
	Alt string `json:"alt,omitempty"`
}

type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

type Maps struct {
	GoogleMaps     string `json:"googleMaps,omitempty"`
	OpenStreetMaps string `json:"openStreetMaps,omitempty"`
}

type Car struct {
	Signs []string `json:"signs,omitempty"`
	Side  string   `json:"side,omitempty"`
}

// Country is a record of the REST Countries v3.1 dataset. It is sourced externally
// and never mutated locally.
type Country struct {
	Name         CountryName         `json:"name"`
	TLD          []string            `json:"tld,omitempty"`
	CCA2         string              `json:"cca2,omitempty"`
	CCN3         string              `json:"ccn3,omitempty"`
	CCA3         string              `json:"cca3"`
	Independent  *bool               `json:"independent,omitempty"`
	Status       string              `json:"status,omitempty"`
	UNMember     bool                `json:"unMember"`
	Currencies   map[string]Currency `json:"currencies,omitempty"`
	Capital      []string            `json:"capital,omitempty"`
	AltSpellings []string            `json:"altSpellings,omitempty"`
	Region       string              `json:"region"`
	Subregion    string              `json:"subregion,omitempty"`
	Languages    map[string]string   `json:"languages,omitempty"`
	LatLng       []float64           `json:"latlng,omitempty"`
	Landlocked   bool                `json:"landlocked"`
	Borders      []string            `json:"borders,omitempty"`
	Area         float64             `json:"area"`
	Flag         string              `json:"flag,omitempty"`
	Flags        Flags               `json:"flags"`
	Population   int64               `json:"population"`
	Maps         Maps                `json:"maps"`
	Car          Car                 `json:"car"`
	Timezones    []string            `json:"timezones,omitempty"`
	Continents   []string            `json:"continents,omitempty"`
	FIFA         string              `json:"fifa,omitempty"`
}

// Code returns the identity of the country within a fetch result set.
func (c *Country) Code() string {
	return c.CCA3
}

// FlagURL prefers the svg image and falls back to png.
func (c *Country) FlagURL() string {
	if c.Flags.SVG != "" {
		return c.Flags.SVG
	}
	return c.Flags.PNG
}

// LanguageNames returns the language display names sorted ascending.
func (c *Country) LanguageNames() []string {
	return sortedValues(c.Languages)
}

// HasLanguage reports whether name is one of the language display names.
func (c *Country) HasLanguage(name string) bool {
	for _, lang := range c.Languages {
		if lang == name {
			return true
		}
	}
	return false
}

// CurrencyNames returns "Name (symbol)" labels sorted ascending.
func (c *Country) CurrencyNames() []string {
	labels := make([]string, 0, len(c.Currencies))
	for _, cur := range c.Currencies {
		if cur.Symbol != "" {
			labels = append(labels, cur.Name+" ("+cur.Symbol+")")
			continue
		}
		labels = append(labels, cur.Name)
	}
	sort.Strings(labels)
	return labels
}

// PrimaryCapital returns the first capital or an empty string.
func (c *Country) PrimaryCapital() string {
	if len(c.Capital) == 0 {
		return ""
	}
	return c.Capital[0]
}

func (c *Country) Validate() error {
	if len(strings.TrimSpace(c.CCA3)) != 3 {
		return ErrInvalidCountryCode
	}
	if strings.TrimSpace(c.Name.Common) == "" {
		return ErrInvalidCountryName
	}
	if c.FlagURL() == "" {
		return ErrInvalidCountryFlag
	}
	if c.Population < 0 || c.Area < 0 {
		return ErrInvalidCountryMetrics
	}
	return nil
}

func sortedValues(m map[string]string) []string {
	values := make([]string, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
