package explorer

import (
	"context"
	"sync"
	"time"

	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/models"
)

// Snapshot is a point-in-time summary of an engine.
type Snapshot struct {
	Loading      bool      `json:"loading"`
	Error        string    `json:"error,omitempty"`
	Total        int       `json:"total"`
	VisibleCount int       `json:"visible"`
	Filter       Filter    `json:"filter"`
	LoadedAt     time.Time `json:"loaded_at,omitempty"`
}

// Engine holds the last fetched country list, the active filter and the derived
// visible list. The visible list is always Apply(countries, filter).
type Engine struct {
	mu        sync.RWMutex
	source    CountrySource
	log       logger.Logger
	countries []models.Country
	visible   []models.Country
	regions   []string
	languages []string
	filter    Filter
	inFlight  int
	lastErr   error
	loadedAt  time.Time
	now       func() time.Time
}

func NewEngine(source CountrySource, log logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Engine{
		source:    source,
		log:       log,
		visible:   []models.Country{},
		regions:   []string{},
		languages: []string{},
		now:       time.Now,
	}
}

// Load fetches the full list. On success the list is replaced wholesale and the visible
// set is recomputed under the current filter. On failure the prior list is kept and the
// error recorded. Overlapping loads are not coordinated: the last to finish wins.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	e.inFlight++
	e.mu.Unlock()

	countries, err := e.source.FetchAll(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight--

	if err != nil {
		e.lastErr = err
		e.log.Warn("country list load failed", logger.Fields{"error": err.Error(), "kept": len(e.countries)})
		return err
	}

	if countries == nil {
		countries = []models.Country{}
	}
	e.countries = countries
	e.regions = Regions(countries)
	e.languages = Languages(countries)
	e.lastErr = nil
	e.loadedAt = e.now()
	e.recompute()
	e.log.Debug("country list loaded", logger.Fields{"total": len(countries), "visible": len(e.visible)})
	return nil
}

// recompute must be called with mu held for writing.
func (e *Engine) recompute() {
	e.visible = Apply(e.countries, e.filter)
}

// SetTerm replaces the term predicate. An empty term clears it.
func (e *Engine) SetTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.Term = term
	e.recompute()
}

// SetRegion replaces the region predicate. "" or "all" clears it.
func (e *Engine) SetRegion(region string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.Region = normalizeChoice(region)
	e.recompute()
}

// SetLanguage replaces the language predicate. "" or "all" clears it.
func (e *Engine) SetLanguage(language string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter.Language = normalizeChoice(language)
	e.recompute()
}

// SetFilter replaces all predicates with a single recompute.
func (e *Engine) SetFilter(f Filter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = f.Normalize()
	e.recompute()
}

// Reset clears every predicate so the visible list equals the full list.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = Filter{}
	e.recompute()
}

// Visible returns a copy of the filtered list.
func (e *Engine) Visible() []models.Country {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneCountries(e.visible)
}

// Countries returns a copy of the full list.
func (e *Engine) Countries() []models.Country {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneCountries(e.countries)
}

func (e *Engine) Filter() Filter {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filter
}

// AvailableRegions is computed over the full list and is unaffected by the filter.
func (e *Engine) AvailableRegions() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append(make([]string, 0, len(e.regions)), e.regions...)
}

// AvailableLanguages is computed over the full list and is unaffected by the filter.
func (e *Engine) AvailableLanguages() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append(make([]string, 0, len(e.languages)), e.languages...)
}

// Err returns the error of the most recent failed load, cleared by a successful one.
func (e *Engine) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s := Snapshot{
		Loading:      e.inFlight > 0,
		Total:        len(e.countries),
		VisibleCount: len(e.visible),
		Filter:       e.filter,
		LoadedAt:     e.loadedAt,
	}
	if e.lastErr != nil {
		s.Error = e.lastErr.Error()
	}
	return s
}

func cloneCountries(in []models.Country) []models.Country {
	out := make([]models.Country, len(in))
	copy(out, in)
	return out
}
