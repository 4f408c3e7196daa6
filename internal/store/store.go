// Package store holds the session's canonical, ordered list of projects.
// There is deliberately no partial update operation: any change to a single
// project's fields arrives via a full ReplaceAll from the backend.
package store

import (
	"sync"

	"github.com/seojin/pdflate/internal/model"
)

// ProjectStore is an in-memory ordered collection of projects, newest first.
type ProjectStore struct {
	mu       sync.RWMutex
	projects []model.Project
}

// New creates an empty store.
func New() *ProjectStore {
	return &ProjectStore{}
}

// Insert prepends a freshly created project.
func (s *ProjectStore) Insert(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]model.Project{p}, s.projects...)
}

// ReplaceAll swaps in a full refresh from the backend.
func (s *ProjectStore) ReplaceAll(projects []model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]model.Project(nil), projects...)
}

// Remove drops the project with the given id. Removing an unknown id is a
// no-op.
func (s *ProjectStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.projects = out
}

// TerminalTransitions returns the projects in fresh that just entered a
// terminal status: they are completed or failed now and this store last saw
// them with a different status. Call before ReplaceAll, while the store still
// holds the previous refresh. Projects never seen before do not count; neither
// do steady terminal states.
func (s *ProjectStore) TerminalTransitions(fresh []model.Project) []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Project
	for _, p := range fresh {
		if !p.IsTerminal() {
			continue
		}
		for _, old := range s.projects {
			if old.ID == p.ID && old.Status != p.Status {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Projects returns a snapshot of the current list.
func (s *ProjectStore) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Project(nil), s.projects...)
}

// Get looks up a project by id.
func (s *ProjectStore) Get(id string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// Len returns the number of projects held.
func (s *ProjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}
