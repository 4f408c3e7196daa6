// Package session holds the client-side working state for editing one
// project's document pair: an immutable original buffer and a mutable
// translated buffer whose edits are persisted after a quiet period.
package session

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/seojin/pdflate/internal/model"
)

// DefaultQuiet is how long editing must be silent before the translated
// buffer is flushed to the persistence callback.
const DefaultQuiet = 500 * time.Millisecond

// PersistFunc writes the translated buffer to the project record.
type PersistFunc func(content string) error

// SaveState describes the outcome of the most recent flush, for display.
type SaveState struct {
	Saving  bool
	Dirty   bool
	SavedAt time.Time
	Err     error
}

// Session manages one open project's buffers under concurrent user editing
// and external refresh. The translated buffer is single-writer; persistence
// is last-writer-wins with no concurrency token.
type Session struct {
	mu         sync.Mutex
	projectID  string
	original   string
	translated string
	persist    PersistFunc
	debounced  func(func())

	saving  bool
	dirty   bool
	savedAt time.Time
	lastErr error
}

// New opens a session seeded from the project's markdown snapshots.
func New(p model.Project, persist PersistFunc) *Session {
	return NewWithQuiet(p, persist, DefaultQuiet)
}

// NewWithQuiet is New with a custom quiet period. Tests use short periods.
func NewWithQuiet(p model.Project, persist PersistFunc, quiet time.Duration) *Session {
	return &Session{
		projectID:  p.ID,
		original:   p.MarkdownOriginal,
		translated: p.MarkdownTranslated,
		persist:    persist,
		debounced:  debounce.New(quiet),
	}
}

// ProjectID returns the id of the project this session edits.
func (s *Session) ProjectID() string {
	return s.projectID
}

// Original returns the read-only source document. It never changes for the
// lifetime of the session.
func (s *Session) Original() string {
	return s.original
}

// Translated returns the current translated buffer.
func (s *Session) Translated() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.translated
}

// ApplyEdit replaces the translated buffer and (re)schedules a flush. Each
// edit cancels any pending, not-yet-fired flush, so a burst of keystrokes
// produces exactly one write carrying the final content.
func (s *Session) ApplyEdit(content string) {
	s.mu.Lock()
	s.translated = content
	s.dirty = true
	s.mu.Unlock()

	s.debounced(s.flush)
}

// ApplyExternal reconciles a value arriving from outside the session, e.g. a
// server refresh. A differing value overwrites the buffer unconditionally; an
// equal value is a no-op. No merge is attempted, so a local edit in flight
// can be replaced by the external value (see Flush for the consequence: the
// next flush then persists the external content).
func (s *Session) ApplyExternal(content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if content == s.translated {
		return false
	}
	s.translated = content
	s.dirty = false
	return true
}

// Flush persists the current buffer immediately, bypassing the quiet period.
func (s *Session) Flush() error {
	s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// State returns the save status for display.
func (s *Session) State() SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SaveState{
		Saving:  s.saving,
		Dirty:   s.dirty,
		SavedAt: s.savedAt,
		Err:     s.lastErr,
	}
}

// flush runs on the debounce timer's goroutine (or synchronously via Flush).
// An in-flight persist cannot be aborted by a later edit; the later edit's
// own debounce cycle issues a second write afterwards.
func (s *Session) flush() {
	s.mu.Lock()
	content := s.translated
	s.saving = true
	s.mu.Unlock()

	err := s.persist(content)

	s.mu.Lock()
	s.saving = false
	s.lastErr = err
	if err == nil {
		s.savedAt = time.Now()
		// Only clear dirty if no newer edit arrived while persisting.
		if s.translated == content {
			s.dirty = false
		}
	}
	s.mu.Unlock()
}
