package store

import (
	"sync"

	"github.com/eXemoumen/datascrapfront/internal/dashboard/model"
)

// Store is the in-memory record store: the full announcement snapshot
// plus the last stats snapshot, replaced wholesale on each refresh.
//
// Refreshes carry a generation ticket taken with Begin before the
// request goes out; Replace commits only the newest ticket, so two
// overlapping refreshes cannot leave the older response in place.
type Store struct {
	mu       sync.RWMutex
	records  []model.Announcement
	stats    model.StatsSnapshot
	nextGen  uint64
	recGen   uint64
	statsGen uint64
}

func New() *Store {
	return &Store{records: []model.Announcement{}}
}

// Begin hands out a refresh generation ticket.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// Replace swaps in a new record snapshot. A ticket older than the last
// committed one is rejected and the call reports false.
func (s *Store) Replace(gen uint64, records []model.Announcement) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.recGen {
		return false
	}
	s.recGen = gen
	if records == nil {
		records = []model.Announcement{}
	}
	s.records = records
	return true
}

// ReplaceStats swaps in a new stats snapshot under the same generation
// rule as Replace.
func (s *Store) ReplaceStats(gen uint64, stats model.StatsSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.statsGen {
		return false
	}
	s.statsGen = gen
	s.stats = stats
	return true
}

// Snapshot returns a copy of the current records so readers never
// observe a half-applied replace or patch.
func (s *Store) Snapshot() []model.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Announcement, len(s.records))
	copy(out, s.records)
	return out
}

// Stats returns the last committed stats snapshot.
func (s *Store) Stats() model.StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Len reports the number of records in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get looks a record up by id.
func (s *Store) Get(id int64) (model.Announcement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.Announcement{}, false
}

// SetChecked patches one record's checked flag in place and returns the
// previous value, which the caller keeps for rollback when the backend
// write fails.
func (s *Store) SetChecked(id int64, checked int) (prev int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			prev = s.records[i].Checked
			s.records[i].Checked = checked
			return prev, true
		}
	}
	return 0, false
}

// SetContact patches one record's contact sub-fields in place and
// returns the previous value for rollback.
func (s *Store) SetContact(id int64, contact model.Contact) (prev model.Contact, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			prev = s.records[i].Contact
			s.records[i].Contact = contact
			return prev, true
		}
	}
	return model.Contact{}, false
}
