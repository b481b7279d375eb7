package explorer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/joefazee/atlas/models"
)

func TestApply(t *testing.T) {
	all := sampleCountries()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no predicates", filter: Filter{}, want: codes(all)},
		{name: "all sentinels", filter: Filter{Region: "all", Language: "all"}, want: codes(all)},
		{name: "term matches common name", filter: Filter{Term: "ind"}, want: []string{"IND", "IDN"}},
		{name: "term is case insensitive", filter: Filter{Term: "FRAN"}, want: []string{"FRA"}},
		{name: "term matches official name", filter: Filter{Term: "kingdom"}, want: []string{"BEL"}},
		{name: "term without match", filter: Filter{Term: "zzzz"}, want: []string{}},
		{name: "region exact", filter: Filter{Region: "Asia"}, want: []string{"IND", "JPN", "IDN"}},
		{name: "region is case sensitive", filter: Filter{Region: "asia"}, want: []string{}},
		{name: "language by display name", filter: Filter{Language: "German"}, want: []string{"DEU", "BEL"}},
		{name: "language code does not match", filter: Filter{Language: "deu"}, want: []string{}},
		{name: "region and language", filter: Filter{Region: "Europe", Language: "French"}, want: []string{"FRA", "BEL"}},
		{name: "all three", filter: Filter{Term: "republic", Region: "Asia", Language: "Hindi"}, want: []string{"IND"}},
		{name: "contradiction", filter: Filter{Region: "Asia", Language: "French"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(Apply(all, tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The visible set is a subset of the input and equals the intersection of the
// single-predicate results.
func TestApply_IsIntersectionOfPredicates(t *testing.T) {
	all := sampleCountries()
	terms := []string{"", "ind", "republic", "a"}
	regions := []string{"", "all", "Asia", "Europe", "Antarctic"}
	languages := []string{"", "all", "English", "French", "German"}

	inSet := func(list []models.Country) map[string]bool {
		m := make(map[string]bool, len(list))
		for _, c := range list {
			m[c.CCA3] = true
		}
		return m
	}

	for _, term := range terms {
		for _, region := range regions {
			for _, lang := range languages {
				got := Apply(all, Filter{Term: term, Region: region, Language: lang})
				byTerm := inSet(Apply(all, Filter{Term: term}))
				byRegion := inSet(Apply(all, Filter{Region: region}))
				byLang := inSet(Apply(all, Filter{Language: lang}))

				var want []string
				for _, c := range all {
					if byTerm[c.CCA3] && byRegion[c.CCA3] && byLang[c.CCA3] {
						want = append(want, c.CCA3)
					}
				}
				if want == nil {
					want = []string{}
				}
				assert.Equal(t, want, codes(got), "term=%q region=%q language=%q", term, region, lang)
			}
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	all := sampleCountries()
	before := codes(all)

	_ = Apply(all, Filter{Region: "Asia"})

	assert.Equal(t, before, codes(all))
	assert.NotNil(t, Apply(nil, Filter{}))
}

func TestRegionsAndLanguages(t *testing.T) {
	all := sampleCountries()

	assert.Equal(t, []string{"Antarctic", "Asia", "Europe"}, Regions(all), "empty regions are dropped")
	assert.Equal(t,
		[]string{"Dutch", "English", "French", "German", "Hindi", "Indonesian", "Japanese", "Tamil"},
		Languages(all))

	assert.Empty(t, Regions(nil))
	assert.Empty(t, Languages(nil))
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Term: "all", Region: "all", Language: "all"}.Normalize()
	assert.Equal(t, Filter{Term: "all"}, f, "the sentinel only applies to region and language")

	assert.True(t, Filter{Region: "all"}.IsZero())
	assert.False(t, Filter{Term: " "}.IsZero())
}
