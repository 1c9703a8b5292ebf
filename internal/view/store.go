package view

import (
	"sync"

	"github.com/gervaso-assistant/ocremote/internal/client"
)

// Snapshot is a point-in-time copy of the published view state.
type Snapshot struct {
	Sessions []SessionView
	Selected string
	Messages []client.MessageEnvelope
	Todos    []client.TodoItem
}

// Store holds the published session list, the current selection, and the
// selected session's message and todo buffers.
//
// Every fetch captures Generation() before it starts and passes it back
// with its publish. The generation advances on selection changes and on
// Invalidate, so a publish carrying a stale generation is a no-op. A late
// response can therefore never overwrite fresher state.
type Store struct {
	mu         sync.Mutex
	generation uint64
	sessions   []SessionView
	selected   string
	messages   []client.MessageEnvelope
	todos      []client.TodoItem
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Generation returns the current publish generation.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generation
}

// Invalidate advances the generation, discarding every in-flight publish.
// Called on teardown and on credential changes.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
}

// Select marks a session as selected and clears the detail buffers until
// the first detail publish for it lands. Returns the new generation.
func (s *Store) Select(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.selected = sessionID
	s.messages = nil
	s.todos = nil

	return s.generation
}

// ClearSelection drops the selection and its detail buffers.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.selected = ""
	s.messages = nil
	s.todos = nil
}

// Selected returns the selected session id, or "" when none.
func (s *Store) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selected
}

// ReplaceSessions publishes a reconciled session list. Returns false
// without mutating when gen is stale. If the selected session is no longer
// present, the selection and detail buffers are cleared.
func (s *Store) ReplaceSessions(gen uint64, sessions []SessionView) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}

	s.sessions = sessions

	if s.selected != "" && !containsSession(sessions, s.selected) {
		s.selected = ""
		s.messages = nil
		s.todos = nil
	}

	return true
}

// ReplaceDetail publishes a selected session's messages and todos. Returns
// false without mutating when gen is stale or sessionID is no longer the
// selection.
func (s *Store) ReplaceDetail(gen uint64, sessionID string, messages []client.MessageEnvelope, todos []client.TodoItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || sessionID != s.selected {
		return false
	}

	s.messages = messages
	s.todos = todos

	return true
}

// Snapshot returns a copy of the published state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Selected: s.selected,
		Sessions: make([]SessionView, len(s.sessions)),
		Messages: make([]client.MessageEnvelope, len(s.messages)),
		Todos:    make([]client.TodoItem, len(s.todos)),
	}

	copy(snap.Sessions, s.sessions)
	copy(snap.Messages, s.messages)
	copy(snap.Todos, s.todos)

	return snap
}

func containsSession(sessions []SessionView, id string) bool {
	for _, session := range sessions {
		if session.ID == id {
			return true
		}
	}

	return false
}
