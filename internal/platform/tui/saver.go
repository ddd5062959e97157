package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/laserdodge/internal/session"
	"github.com/vovakirdan/laserdodge/internal/storage"
)

// Saver records finished attempts in the attempts store. The store may be
// nil, in which case summaries are discarded; the preview works the same
// with or without a database.
type Saver struct {
	store *storage.Store
	log   *log.Logger
}

// NewSaver wraps a store for the preview host. Both arguments may be nil.
func NewSaver(store *storage.Store, logger *log.Logger) *Saver {
	return &Saver{store: store, log: logger}
}

// Save records one attempt summary. Failures are logged and returned but
// never interrupt the caller; a preview must not die because the database
// is unavailable.
func (s *Saver) Save(sum session.Summary) error {
	if s == nil || s.store == nil {
		return nil
	}
	err := s.store.SaveAttempt(storage.Attempt{
		ID:       sum.AttemptID,
		LevelID:  sum.LevelID,
		Outcome:  string(sum.Outcome),
		Fill:     sum.Fill,
		Duration: sum.Duration,
		Zaps:     sum.Zaps,
	})
	if err != nil && s.log != nil {
		s.log.Warn("could not save attempt", "level", sum.LevelID, "error", err)
	}
	return err
}
