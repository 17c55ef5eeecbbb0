package git

import "context"

// MockLogSource is a test double for Extractor.
// It returns predefined log text without needing a real git repository.
type MockLogSource struct {
	Output string
	Error  error
	Calls  []string
}

// NewMockLogSource creates a new MockLogSource with the given output.
func NewMockLogSource(output string, err error) *MockLogSource {
	return &MockLogSource{
		Output: output,
		Error:  err,
	}
}

// Extract records the requested path and returns the predefined output or error.
func (m *MockLogSource) Extract(_ context.Context, repoPath string) (string, error) {
	m.Calls = append(m.Calls, repoPath)
	if m.Error != nil {
		return "", m.Error
	}
	return m.Output, nil
}

// Compile-time interface conformance check.
var _ LogSource = (*MockLogSource)(nil)
