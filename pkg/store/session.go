// Package store holds the working set of a single chat session: scraped
// pages and the most recently extracted profile. Everything lives in memory
// and dies with the process.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/kmorales/careerforge/internal/models"
)

type SessionStoreConfig struct {
	SearchLimit int
}

type SessionStore struct {
	config SessionStoreConfig

	mu      sync.RWMutex
	docs    []models.ProcessedDocument
	profile *models.StructuredProfile
}

func NewWithConfig(config SessionStoreConfig) *SessionStore {
	if config.SearchLimit == 0 {
		config.SearchLimit = 5
	}
	return &SessionStore{config: config}
}

func New() *SessionStore {
	return NewWithConfig(SessionStoreConfig{})
}

// Store adds processed documents to the session working set.
func (s *SessionStore) Store(docs []models.ProcessedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
	return nil
}

// Query returns up to limit documents ranked by term overlap with the query.
// A non-positive limit falls back to the configured search limit. Chunks are
// scored individually; the best chunk represents its document.
func (s *SessionStore) Query(query string, limit int) ([]models.Document, error) {
	if limit <= 0 {
		limit = s.config.SearchLimit
	}

	terms := queryTerms(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		doc   models.Document
		score int
	}

	var results []scored
	for _, doc := range s.docs {
		best := ""
		bestScore := 0
		for _, chunk := range doc.Chunks {
			if score := overlap(terms, chunk); score > bestScore {
				best = chunk
				bestScore = score
			}
		}
		if bestScore == 0 {
			continue
		}
		hit := doc.Document
		hit.Content = best
		results = append(results, scored{doc: hit, score: bestScore})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	docs := make([]models.Document, 0, len(results))
	for _, r := range results {
		docs = append(docs, r.doc)
	}
	return docs, nil
}

// SetProfile records the profile extracted in this session.
func (s *SessionStore) SetProfile(profile *models.StructuredProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
}

// Profile returns the session profile, or nil if none was extracted yet.
func (s *SessionStore) Profile() *models.StructuredProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Len reports how many documents the session holds.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func queryTerms(query string) map[string]bool {
	terms := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) > 2 {
			terms[w] = true
		}
	}
	return terms
}

func overlap(terms map[string]bool, chunk string) int {
	score := 0
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(chunk)) {
		if terms[w] && !seen[w] {
			score++
			seen[w] = true
		}
	}
	return score
}
