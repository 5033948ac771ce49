package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"cinelist-backend/models"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("similar session not found")

type similarSession struct {
	loader   *SimilarLoader
	lastUsed time.Time
}

// SimilarSessions tracks one SimilarLoader per client page so HTTP clients
// can drive the loop across requests.
type SimilarSessions struct {
	source RelatedSource
	ttl    time.Duration
	now    func() time.Time

	mutex    sync.Mutex
	sessions map[string]*similarSession
}

// NewSimilarSessions creates a registry; sessions idle longer than ttl are evicted
func NewSimilarSessions(source RelatedSource, ttl time.Duration) *SimilarSessions {
	return &SimilarSessions{
		source:   source,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*similarSession),
	}
}

// Create starts a session for subject and loads its first page
func (s *SimilarSessions) Create(ctx context.Context, category models.Category, subject int) (string, *SimilarLoader) {
	id := uuid.NewString()
	loader := NewSimilarLoader(s.source, category, subject)

	s.mutex.Lock()
	s.sessions[id] = &similarSession{loader: loader, lastUsed: s.now()}
	s.mutex.Unlock()

	log.Printf("Create: Started similar session %s for %s %d", id, category, subject)
	loader.LoadPage(ctx, 1, true)
	return id, loader
}

// Get returns the loader for id and marks it used
func (s *SimilarSessions) Get(id string) (*SimilarLoader, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.lastUsed = s.now()
	return session.loader, nil
}

// Delete drops a session
func (s *SimilarSessions) Delete(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions
func (s *SimilarSessions) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the ttl and returns how many went
func (s *SimilarSessions) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, session := range s.sessions {
		if session.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("Sweep: Evicted %d idle similar sessions", removed)
	}
	return removed
}

// Run sweeps periodically until ctx is cancelled
func (s *SimilarSessions) Run(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
