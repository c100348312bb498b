package service

import (
	"sync"
	"time"

	"github.com/sathvik2377/timetable-api/internal/models"
)

// variantSession is the in-memory state of one generate/select/commit cycle.
// All fields are guarded by the store-issued lock; the busy flag serialises
// solver round-trips so that at most one generate or commit is in flight.
type variantSession struct {
	ID            string
	InstitutionID string
	Title         string
	Days          []string
	TimeRanges    []string
	Feasibility   models.FeasibilityInput

	Status     models.SessionStatus
	Candidates []models.Variant
	SelectedID string
	LastError  string

	Official    models.Grid
	CommittedAt time.Time

	Custom models.Grid
	Mode   models.ViewMode
	Dirty  bool

	busy bool

	CreatedAt time.Time
	TouchedAt time.Time

	mu sync.Mutex
}

func (v *variantSession) findCandidate(variantID string) *models.Variant {
	for i := range v.Candidates {
		if v.Candidates[i].VariantID == variantID {
			return &v.Candidates[i]
		}
	}
	return nil
}

// sessionStore keeps sessions in memory with a sliding TTL. Expired entries
// are dropped lazily on access.
type sessionStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]*variantSession
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &sessionStore{
		ttl:   ttl,
		items: make(map[string]*variantSession),
	}
}

func (s *sessionStore) Save(session *variantSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[session.ID] = session
}

func (s *sessionStore) Get(id string) (*variantSession, bool) {
	s.mu.RLock()
	session, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	session.mu.Lock()
	expired := time.Since(session.TouchedAt) > s.ttl
	if !expired {
		session.TouchedAt = time.Now().UTC()
	}
	session.mu.Unlock()

	if expired {
		s.Delete(id)
		return nil, false
	}
	return session, true
}

func (s *sessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

func (s *sessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
