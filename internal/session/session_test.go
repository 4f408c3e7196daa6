package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/seojin/pdflate/internal/model"
)

// recorder is a PersistFunc that records every flush it receives.
type recorder struct {
	mu       sync.Mutex
	contents []string
	err      error
}

func (r *recorder) persist(content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents = append(r.contents, content)
	return r.err
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.contents...)
}

func newTestSession(rec *recorder, quiet time.Duration) *Session {
	p := model.Project{
		ID:                 "p1",
		MarkdownOriginal:   "# original",
		MarkdownTranslated: "# translated",
	}
	return NewWithQuiet(p, rec.persist, quiet)
}

func TestEditBurstFlushesOnce(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(rec, 30*time.Millisecond)

	// A burst of keystrokes inside the quiet period must collapse into a
	// single write carrying the final content.
	s.ApplyEdit("a")
	s.ApplyEdit("ab")
	s.ApplyEdit("abc")

	time.Sleep(150 * time.Millisecond)

	calls := rec.calls()
	if len(calls) != 1 {
		t.Fatalf("persist called %d times, want 1: %v", len(calls), calls)
	}
	if calls[0] != "abc" {
		t.Errorf("persisted %q, want final content", calls[0])
	}

	st := s.State()
	if st.Dirty {
		t.Error("session still dirty after successful flush")
	}
	if st.SavedAt.IsZero() {
		t.Error("SavedAt not recorded")
	}
}

func TestSeparatedEditsFlushSeparately(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(rec, 20*time.Millisecond)

	s.ApplyEdit("first")
	time.Sleep(100 * time.Millisecond)
	s.ApplyEdit("second")
	time.Sleep(100 * time.Millisecond)

	calls := rec.calls()
	if len(calls) != 2 {
		t.Fatalf("persist called %d times, want 2: %v", len(calls), calls)
	}
	if calls[0] != "first" || calls[1] != "second" {
		t.Errorf("persisted %v", calls)
	}
}

func TestFlushBypassesQuietPeriod(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(rec, 10*time.Second)

	s.ApplyEdit("urgent")
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	calls := rec.calls()
	if len(calls) != 1 || calls[0] != "urgent" {
		t.Fatalf("persist calls = %v, want [urgent]", calls)
	}
}

func TestFlushErrorKeepsDirty(t *testing.T) {
	rec := &recorder{err: errors.New("network down")}
	s := newTestSession(rec, 10*time.Second)

	s.ApplyEdit("unsaved")
	if err := s.Flush(); err == nil {
		t.Fatal("Flush returned nil, want error")
	}

	st := s.State()
	if !st.Dirty {
		t.Error("failed flush cleared dirty; content would be silently lost")
	}
	if st.Err == nil {
		t.Error("State().Err not set after failed flush")
	}
}

func TestApplyExternalEqualIsNoop(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(rec, 10*time.Second)

	if s.ApplyExternal("# translated") {
		t.Error("ApplyExternal with identical content reported a change")
	}
	if s.Translated() != "# translated" {
		t.Errorf("Translated() = %q", s.Translated())
	}
}

func TestApplyExternalOverwrites(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(rec, 10*time.Second)

	s.ApplyEdit("local edit")
	if !s.ApplyExternal("server copy") {
		t.Fatal("ApplyExternal with differing content reported no change")
	}
	if s.Translated() != "server copy" {
		t.Errorf("Translated() = %q, want external value", s.Translated())
	}
	if s.State().Dirty {
		t.Error("external reconciliation left session dirty")
	}
}

func TestOriginalIsImmutable(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(rec, 10*time.Second)

	s.ApplyEdit("changed translation")
	s.ApplyExternal("another translation")

	if s.Original() != "# original" {
		t.Errorf("Original() = %q, want untouched source", s.Original())
	}
}
