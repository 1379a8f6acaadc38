package store

import (
	"context"
	"sync"
	"time"

	"github.com/jiwoolab/naver-top-news/internal/models"
	"github.com/jiwoolab/naver-top-news/internal/processing"
)

// Memory is an in-process Store used by tests and local dry runs. It
// mimics the batch contract: records become visible only when the
// whole commit succeeds.
type Memory struct {
	mu        sync.Mutex
	docs      map[string]models.NewsRecord
	now       func() time.Time
	commitErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]models.NewsRecord),
		now:  time.Now,
	}
}

// SetClock pins the clock used to derive the day key.
func (m *Memory) SetClock(now func() time.Time) {
	m.now = now
}

// FailCommits makes every subsequent SaveDaily return err without
// applying anything.
func (m *Memory) FailCommits(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitErr = err
}

// SaveDaily stages the batch and applies it atomically.
func (m *Memory) SaveDaily(_ context.Context, records []models.NewsRecord) error {
	if len(records) == 0 {
		return nil
	}

	day := processing.DayKey(m.now())

	staged := make(map[string]models.NewsRecord, len(records))
	for _, rec := range records {
		staged[processing.DocumentID(day, rec.Category)] = rec
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.commitErr != nil {
		return m.commitErr
	}
	for id, rec := range staged {
		m.docs[id] = rec
	}
	return nil
}

// Get returns the record stored under id.
func (m *Memory) Get(id string) (models.NewsRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.docs[id]
	return rec, ok
}

// Len reports the number of stored documents.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}
