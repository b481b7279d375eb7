package explorer

import (
	"sort"
	"strings"

	"github.com/joefazee/atlas/models"
)

// AllSentinel is the region/language value meaning "no constraint".
const AllSentinel = "all"

// Filter is the predicate state of one explore session. Empty fields are inactive.
type Filter struct {
	Term     string `json:"term"`
	Region   string `json:"region"`
	Language string `json:"language"`
}

// Normalize maps the "all" sentinel to the empty (inactive) value.
func (f Filter) Normalize() Filter {
	return Filter{
		Term:     f.Term,
		Region:   normalizeChoice(f.Region),
		Language: normalizeChoice(f.Language),
	}
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	n := f.Normalize()
	return n.Term == "" && n.Region == "" && n.Language == ""
}

func normalizeChoice(v string) string {
	if v == AllSentinel {
		return ""
	}
	return v
}

// MatchesTerm is a case-insensitive substring match on the common or official name.
func MatchesTerm(c *models.Country, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name.Common), needle) ||
		strings.Contains(strings.ToLower(c.Name.Official), needle)
}

// MatchesRegion is an exact, case-sensitive comparison.
func MatchesRegion(c *models.Country, region string) bool {
	region = normalizeChoice(region)
	return region == "" || c.Region == region
}

// MatchesLanguage looks at language display names, not codes.
func MatchesLanguage(c *models.Country, language string) bool {
	language = normalizeChoice(language)
	return language == "" || c.HasLanguage(language)
}

// Apply returns the countries satisfying every active predicate of f, in input order.
// The result is never nil.
func Apply(countries []models.Country, f Filter) []models.Country {
	f = f.Normalize()
	out := make([]models.Country, 0, len(countries))
	for i := range countries {
		c := &countries[i]
		if MatchesTerm(c, f.Term) && MatchesRegion(c, f.Region) && MatchesLanguage(c, f.Language) {
			out = append(out, *c)
		}
	}
	return out
}

// Regions is the sorted set of non-empty regions present in countries.
func Regions(countries []models.Country) []string {
	set := make(map[string]struct{})
	for i := range countries {
		if r := countries[i].Region; r != "" {
			set[r] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Languages is the sorted set of language display names present in countries.
func Languages(countries []models.Country) []string {
	set := make(map[string]struct{})
	for i := range countries {
		for _, name := range countries[i].Languages {
			if name != "" {
				set[name] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
