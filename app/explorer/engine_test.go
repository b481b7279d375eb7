package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/atlas/models"
)

func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(&stubSource{results: []stubResult{{countries: sampleCountries()}}}, nil)
	require.NoError(t, e.Load(context.Background()))
	return e
}

func TestEngine_InitialState(t *testing.T) {
	e := NewEngine(&stubSource{results: []stubResult{{}}}, nil)

	assert.Empty(t, e.Visible())
	assert.Empty(t, e.Countries())
	assert.Empty(t, e.AvailableRegions())
	assert.Equal(t, Filter{}, e.Filter())
	assert.Equal(t, Snapshot{}, e.Snapshot())
}

func TestEngine_FacetsBeforeLoadAreEmptyLists(t *testing.T) {
	e := NewEngine(&stubSource{results: []stubResult{{}}}, nil)

	assert.NotNil(t, e.AvailableRegions())
	assert.NotNil(t, e.AvailableLanguages())

	raw, err := json.Marshal(newFacetsResponse(e))
	require.NoError(t, err)
	assert.JSONEq(t, `{"regions":[],"languages":[]}`, string(raw))
}

func TestEngine_LoadWithoutFilterShowsAll(t *testing.T) {
	e := loadedEngine(t)

	assert.Len(t, e.Visible(), len(sampleCountries()))
	assert.Equal(t, []string{"Antarctic", "Asia", "Europe"}, e.AvailableRegions())
	snap := e.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, 8, snap.Total)
	assert.Equal(t, 8, snap.VisibleCount)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestEngine_RegionScenario(t *testing.T) {
	e := loadedEngine(t)

	e.SetRegion("Asia")
	assert.Equal(t, []string{"IND", "JPN", "IDN"}, codes(e.Visible()))

	e.SetRegion("Europe")
	assert.Equal(t, []string{"FRA", "DEU", "BEL"}, codes(e.Visible()), "setting a predicate replaces it")

	e.SetRegion("all")
	assert.Len(t, e.Visible(), 8)
	assert.Equal(t, "", e.Filter().Region)
}

func TestEngine_TermScenario(t *testing.T) {
	e := loadedEngine(t)

	e.SetTerm("ind")
	visible := codes(e.Visible())
	assert.Contains(t, visible, "IND")
	assert.NotContains(t, visible, "FRA")

	e.SetTerm("")
	assert.Len(t, e.Visible(), 8)
}

func TestEngine_PredicatesCombine(t *testing.T) {
	e := loadedEngine(t)

	e.SetRegion("Europe")
	e.SetLanguage("German")
	assert.Equal(t, []string{"DEU", "BEL"}, codes(e.Visible()))

	e.SetTerm("bel")
	assert.Equal(t, []string{"BEL"}, codes(e.Visible()))

	e.SetLanguage("")
	assert.Equal(t, Filter{Term: "bel", Region: "Europe"}, e.Filter())
}

func TestEngine_ResetKeepsFacets(t *testing.T) {
	e := loadedEngine(t)
	regions := e.AvailableRegions()
	languages := e.AvailableLanguages()

	e.SetFilter(Filter{Term: "x", Region: "Asia", Language: "Hindi"})
	assert.Equal(t, regions, e.AvailableRegions())
	assert.Equal(t, languages, e.AvailableLanguages())

	e.Reset()
	assert.Equal(t, Filter{}, e.Filter())
	assert.Equal(t, codes(sampleCountries()), codes(e.Visible()))
	assert.Equal(t, regions, e.AvailableRegions())
	assert.Equal(t, languages, e.AvailableLanguages())
}

func TestEngine_ReloadKeepsActiveFilter(t *testing.T) {
	updated := append(sampleCountries(),
		country("CHN", "China", "People's Republic of China", "Asia", map[string]string{"zho": "Chinese"}))
	src := &stubSource{results: []stubResult{{countries: sampleCountries()}, {countries: updated}}}
	e := NewEngine(src, nil)
	require.NoError(t, e.Load(context.Background()))

	e.SetRegion("Asia")
	require.NoError(t, e.Load(context.Background()))

	assert.Equal(t, []string{"IND", "JPN", "IDN", "CHN"}, codes(e.Visible()))
	assert.Len(t, e.Countries(), 9)
	assert.Contains(t, e.AvailableLanguages(), "Chinese")
}

func TestEngine_FailedLoadKeepsPriorList(t *testing.T) {
	boom := errors.New("upstream down")
	src := &stubSource{results: []stubResult{{countries: sampleCountries()}, {err: boom}, {countries: sampleCountries()[:2]}}}
	e := NewEngine(src, nil)
	require.NoError(t, e.Load(context.Background()))
	e.SetRegion("Europe")

	err := e.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, e.Err(), boom)
	assert.Len(t, e.Countries(), 8)
	assert.Equal(t, []string{"FRA", "DEU", "BEL"}, codes(e.Visible()))
	assert.Equal(t, "upstream down", e.Snapshot().Error)

	require.NoError(t, e.Load(context.Background()))
	assert.NoError(t, e.Err())
	assert.Equal(t, []string{"FRA"}, codes(e.Visible()))
}

func TestEngine_FirstLoadFailure(t *testing.T) {
	e := NewEngine(&stubSource{results: []stubResult{{err: models.ErrNetworkFailure}}}, nil)

	err := e.Load(context.Background())
	assert.ErrorIs(t, err, models.ErrNetworkFailure)
	assert.Empty(t, e.Visible())
	assert.Equal(t, 0, e.Snapshot().Total)
}

func TestEngine_LoadingFlag(t *testing.T) {
	src := &stubSource{results: []stubResult{{countries: sampleCountries()}}, gate: make(chan struct{})}
	e := NewEngine(src, nil)

	done := make(chan error)
	go func() { done <- e.Load(context.Background()) }()

	assert.Eventually(t, func() bool { return e.Snapshot().Loading }, time.Second, time.Millisecond)
	close(src.gate)
	require.NoError(t, <-done)
	assert.False(t, e.Snapshot().Loading)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e := loadedEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); e.SetRegion("Asia") }()
		go func() { defer wg.Done(); _ = e.Visible(); _ = e.Snapshot() }()
		go func() { defer wg.Done(); _ = e.Load(context.Background()) }()
	}
	wg.Wait()

	assert.Equal(t, Apply(e.Countries(), e.Filter()), e.Visible())
}
