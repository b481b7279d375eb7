package explorer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joefazee/atlas/internal/debounce"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/models"
)

var (
	ErrRegistryClosed  = errors.New("explore registry is closed")
	ErrTooManySessions = errors.New("too many open explore sessions")
)

// Session is one client's explore state: an engine plus a debouncer for typed input.
type Session struct {
	ID        string
	CreatedAt time.Time

	engine    *Engine
	debouncer *debounce.Debouncer

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) Engine() *Engine {
	return s.engine
}

// InputTerm applies term after the quiet period, dropping superseded input.
func (s *Session) InputTerm(term string) {
	s.debouncer.Call(func() { s.engine.SetTerm(term) })
}

// SetFilter replaces every predicate. Typed input still waiting for the quiet
// period is dropped so it cannot overwrite the new filter.
func (s *Session) SetFilter(f Filter) {
	s.debouncer.Cancel()
	s.engine.SetFilter(f)
}

// Reset drops pending typed input and clears every predicate.
func (s *Session) Reset() {
	s.debouncer.Cancel()
	s.engine.Reset()
}

// FlushInput applies pending typed input immediately.
func (s *Session) FlushInput() bool {
	return s.debouncer.Flush()
}

// InputPending reports whether typed input is waiting to be applied.
func (s *Session) InputPending() bool {
	return s.debouncer.Pending()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() {
	s.debouncer.Stop()
}

// Registry owns the open explore sessions and sweeps idle ones.
type Registry struct {
	source CountrySource
	cfg    *Config
	log    logger.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewRegistry starts the idle sweeper when cfg.IdleTTL and cfg.SweepInterval are set.
// Call CloseAll to stop it.
func NewRegistry(source CountrySource, cfg *Config, log logger.Logger) *Registry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	r := &Registry{
		source:   source,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	if cfg.IdleTTL > 0 && cfg.SweepInterval > 0 {
		r.wg.Add(1)
		go r.sweeper()
	}
	return r
}

// Open creates a session and performs its initial load. A failed load does not fail
// Open: the error is visible in the session snapshot and a reload can be requested.
func (r *Registry) Open(ctx context.Context) (*Session, error) {
	now := r.now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		engine:    NewEngine(r.source, r.log),
		debouncer: debounce.New(r.cfg.DebounceInterval),
		lastSeen:  now,
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}
	if r.cfg.MaxSessions > 0 && len(r.sessions) >= r.cfg.MaxSessions {
		r.mu.Unlock()
		return nil, ErrTooManySessions
	}
	r.sessions[s.ID] = s
	r.mu.Unlock()

	loadCtx := ctx
	if r.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, r.cfg.LoadTimeout)
		defer cancel()
	}
	_ = s.engine.Load(loadCtx)

	r.log.Info("explore session opened", logger.Fields{"session_id": s.ID, "total": s.engine.Snapshot().Total})
	return s, nil
}

// Get returns the session and marks it as recently used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	s.touch(r.now())
	return s, nil
}

// Close tears down one session.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return models.ErrRecordNotFound
	}
	s.close()
	r.log.Info("explore session closed", logger.Fields{"session_id": id})
	return nil
}

// CloseAll tears down every session and stops the sweeper. Open fails afterwards.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	close(r.done)
	r.wg.Wait()
	for _, s := range sessions {
		s.close()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// sweep closes sessions idle for longer than IdleTTL and returns how many it closed.
func (r *Registry) sweep() int {
	cutoff := r.now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var idle []*Session
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	if len(idle) > 0 {
		r.log.Debug("idle explore sessions swept", logger.Fields{"count": len(idle)})
	}
	return len(idle)
}

func (r *Registry) sweeper() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}
