package story

import (
	"context"
	"sync"
)

// MockCompleter is a test double for GeminiClient.
type MockCompleter struct {
	mu       sync.Mutex
	Response string
	Error    error
	Prompts  []string
}

// NewMockCompleter creates a MockCompleter that answers every prompt with response.
func NewMockCompleter(response string, err error) *MockCompleter {
	return &MockCompleter{Response: response, Error: err}
}

// Complete records the prompt and returns the predefined response or error.
func (m *MockCompleter) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	if m.Error != nil {
		return "", m.Error
	}
	return m.Response, nil
}

// Compile-time interface conformance check.
var _ Completer = (*MockCompleter)(nil)
