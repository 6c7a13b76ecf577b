package services

import (
	"context"
	"sync"
)

// MockLLMAPI is a mock implementation of LLMService for testing and for the
// mock provider.
type MockLLMAPI struct {
	InitModelFunc    func(ctx context.Context, modelName string) error
	GenerateTextFunc func(ctx context.Context, systemPrompt, prompt string) (string, error)

	// Track calls for testing
	InitModelCalls    []string
	GenerateTextCalls []GenerateTextCall

	mu sync.Mutex // protects all fields above
}

type GenerateTextCall struct {
	SystemPrompt string
	Prompt       string
}

var _ LLMService = (*MockLLMAPI)(nil)

// MockResponse is what the mock generates when no GenerateTextFunc is set.
const MockResponse = "Mock response"

func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{}
}

func (m *MockLLMAPI) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	m.InitModelCalls = append(m.InitModelCalls, modelName)
	fn := m.InitModelFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, modelName)
	}
	return nil
}

// GenerateText records the call and then runs GenerateTextFunc without
// holding the lock, so a blocking func does not stall other callers.
func (m *MockLLMAPI) GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error) {
	m.mu.Lock()
	m.GenerateTextCalls = append(m.GenerateTextCalls, GenerateTextCall{
		SystemPrompt: systemPrompt,
		Prompt:       prompt,
	})
	fn := m.GenerateTextFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, systemPrompt, prompt)
	}
	return MockResponse, nil
}

// SetGenerateTextResponse makes every generation return text.
func (m *MockLLMAPI) SetGenerateTextResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateTextFunc = func(ctx context.Context, systemPrompt, prompt string) (string, error) {
		return text, nil
	}
}

// SetGenerateTextError makes every generation fail with err.
func (m *MockLLMAPI) SetGenerateTextError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateTextFunc = func(ctx context.Context, systemPrompt, prompt string) (string, error) {
		return "", err
	}
}

// GetCalls returns a copy of the recorded generation calls.
func (m *MockLLMAPI) GetCalls() []GenerateTextCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]GenerateTextCall, len(m.GenerateTextCalls))
	copy(calls, m.GenerateTextCalls)
	return calls
}

func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = nil
	m.GenerateTextCalls = nil
}
