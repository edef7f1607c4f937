package recorder

import (
	"context"
	"sync"
)

// Entry is one recorded answer.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Memory keeps recorded answers in memory.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory returns an empty in-memory recorder.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends the answer.
func (m *Memory) Record(ctx context.Context, question, answer string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{Question: question, Answer: answer})
	return nil
}

// Entries returns a copy of everything recorded so far, oldest first.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}

// Reset drops all recorded entries.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}
