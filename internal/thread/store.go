// Package thread keeps in-memory conversation threads: ordered lists of
// role-tagged messages keyed by a thread id. Threads live for the process
// lifetime only and are never persisted.
package thread

import (
	"fmt"
	"sync"
)

// Message is a model-agnostic chat message.
type Message struct {
	Role    string
	Content string
}

// Roles used across the lab.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Store maps thread ids to ordered message lists. The first message of every
// thread is the system prompt, inserted at creation and never removed.
//
// There is no eviction and no size bound; threads grow for as long as the
// process runs.
type Store struct {
	mu           sync.Mutex
	systemPrompt string
	seq          int
	threads      map[string][]Message
}

// NewStore creates an empty store. Every thread it creates starts with the
// given system prompt.
func NewStore(systemPrompt string) *Store {
	return &Store{
		systemPrompt: systemPrompt,
		threads:      map[string][]Message{},
	}
}

// Create creates a thread and returns its id. When id is empty a sequential
// id of the form thread_N is generated. Creating an existing thread is a
// no-op.
func (s *Store) Create(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(id)
}

func (s *Store) create(id string) string {
	if id == "" {
		s.seq++
		id = fmt.Sprintf("thread_%d", s.seq)
	}
	if _, exists := s.threads[id]; exists {
		return id
	}
	s.threads[id] = []Message{{Role: RoleSystem, Content: s.systemPrompt}}
	return id
}

// Append adds a message to a thread, creating the thread first if it does
// not exist yet.
func (s *Store) Append(id, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = s.create(id)
	s.threads[id] = append(s.threads[id], Message{Role: role, Content: content})
}

// SetLastContent replaces the content of the newest message in a thread.
// It is a no-op for unknown ids.
func (s *Store) SetLastContent(id, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.threads[id]
	if !ok || len(msgs) == 0 {
		return
	}
	msgs[len(msgs)-1].Content = content
}

// Messages returns an ordered copy of a thread's messages, or nil for an
// unknown id.
func (s *Store) Messages(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.threads[id]
	if !ok {
		return nil
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Len returns the number of messages in a thread, including the system
// prompt. Unknown ids have length 0.
func (s *Store) Len(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.threads[id])
}
