package aggregate

import (
	"sync"

	"github.com/stratusdial/convoiq/internal/model"
)

// ProfileStore holds in-memory contact profiles and serializes updates per
// contact. Two concurrent interactions for the same contact would otherwise
// both read the old overall score and compute their change flag against a
// stale baseline; interactions for different contacts proceed in parallel.
type ProfileStore struct {
	agg *Aggregator

	mu       sync.RWMutex
	profiles map[string]*model.ContactSentimentProfile
	locks    map[string]*sync.Mutex
}

// NewProfileStore creates an empty profile store
func NewProfileStore(agg *Aggregator) *ProfileStore {
	return &ProfileStore{
		agg:      agg,
		profiles: make(map[string]*model.ContactSentimentProfile),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Record applies one sentiment result to the contact's profile under the
// contact's lock and returns a snapshot of the updated profile
func (s *ProfileStore) Record(contactID string, sent model.SentimentResult, channel string) *model.ContactSentimentProfile {
	lock := s.contactLock(contactID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	profile := s.profiles[contactID]
	s.mu.RUnlock()

	updated := s.agg.RecordInteraction(profile, sent, contactID, channel)

	s.mu.Lock()
	s.profiles[contactID] = updated
	s.mu.Unlock()

	return updated.Clone()
}

// Get returns a snapshot of a contact's profile
func (s *ProfileStore) Get(contactID string) (*model.ContactSentimentProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[contactID]
	if !ok {
		return nil, false
	}
	return profile.Clone(), true
}

// Put seeds the store with an existing profile (e.g. loaded by the caller
// from its own persistence) so subsequent interactions extend its history
func (s *ProfileStore) Put(profile *model.ContactSentimentProfile) {
	if profile == nil || profile.ContactID == "" {
		return
	}
	lock := s.contactLock(profile.ContactID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	s.profiles[profile.ContactID] = profile.Clone()
	s.mu.Unlock()
}

// contactLock returns the per-contact mutex, creating it on first use
func (s *ProfileStore) contactLock(contactID string) *sync.Mutex {
	s.mu.RLock()
	lock, exists := s.locks[contactID]
	s.mu.RUnlock()

	if exists {
		return lock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if lock, exists := s.locks[contactID]; exists {
		return lock
	}

	lock = &sync.Mutex{}
	s.locks[contactID] = lock
	return lock
}
