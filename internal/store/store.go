package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the activity log of one session. Stats are recomputed after
// every mutation.
type Store struct {
	mu      sync.RWMutex
	entries []ActivityLogEntry // most recent first
	stats   UserStats

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides the id generator.
func WithIDFunc(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Add records a new entry and returns its id. Input is not validated.
func (s *Store) Add(category Category, description string, impactScore int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := ActivityLogEntry{
		ID:          s.newID(),
		Category:    category,
		Description: description,
		ImpactScore: impactScore,
		Date:        s.now(),
	}
	s.entries = append([]ActivityLogEntry{e}, s.entries...)
	s.recompute()
	return e.ID
}

// Delete removes the entry with the given id. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			break
		}
	}
	s.recompute()
}

// Seed adds mock entries oldest first, so the last one ends up on top.
func (s *Store) Seed(seed []SeedEntry) {
	for _, e := range seed {
		s.Add(e.Category, e.Description, e.ImpactScore)
	}
}

// Entries returns a copy of all entries, most recent first.
func (s *Store) Entries() []ActivityLogEntry {
	return s.Recent(0)
}

// Recent returns up to n of the most recent entries. n <= 0 returns all.
func (s *Store) Recent(n int) []ActivityLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]ActivityLogEntry, n)
	copy(out, s.entries[:n])
	return out
}

func (s *Store) Get(id string) (ActivityLogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return ActivityLogEntry{}, false
}

func (s *Store) Stats() UserStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// CategoryTotals returns one row per category, in display order, including
// categories with no entries. Entries with unknown categories are appended
// after the fixed set.
func (s *Store) CategoryTotals() []CategoryTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make([]CategoryTotal, len(categories))
	index := make(map[Category]int, len(categories))
	for i, c := range categories {
		totals[i].Category = c
		index[c] = i
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		j, ok := index[e.Category]
		if !ok {
			j = len(totals)
			index[e.Category] = j
			totals = append(totals, CategoryTotal{Category: e.Category})
		}
		totals[j].Count++
		totals[j].Score += e.ImpactScore
	}
	return totals
}

// recompute must be called with mu held.
func (s *Store) recompute() {
	total := 0
	for _, e := range s.entries {
		total += e.ImpactScore
	}
	s.stats = UserStats{
		TotalLogs:  len(s.entries),
		TotalScore: total,
		Streak:     mockStreak(len(s.entries)),
	}
}

// mockStreak is a placeholder until real day-by-day streaks exist.
func mockStreak(n int) int {
	if n == 0 {
		return 0
	}
	return 3 + n/5
}
