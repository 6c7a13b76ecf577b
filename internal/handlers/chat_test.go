package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jwebster45206/gift-hunt/internal/metrics"
	"github.com/jwebster45206/gift-hunt/internal/services"
	"github.com/jwebster45206/gift-hunt/pkg/chat"
	"github.com/jwebster45206/gift-hunt/pkg/gift"
	"github.com/jwebster45206/gift-hunt/pkg/hunt"
	"github.com/jwebster45206/gift-hunt/pkg/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	handler *ChatHandler
	hunt    *hunt.Hunt
	clock   *clockwork.FakeClock
	llm     *services.MockLLMAPI
	store   *services.MockStore
	metrics *metrics.Recorder
	logs    *bytes.Buffer
}

func newChatFixture(t *testing.T, opts ChatOptions) *chatFixture {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	f := &chatFixture{
		logs:    logs,
		hunt:    hunt.New(gift.Default(), clock, logger),
		clock:   clock,
		llm:     services.NewMockLLMAPI(),
		store:   services.NewMockStore(),
		metrics: metrics.NewRecorder(),
	}
	if opts.HuntKey == "" {
		opts.HuntKey = "test"
	}
	f.handler = NewChatHandler(f.hunt, f.llm, f.store, f.metrics, opts, logger)
	return f
}

func (f *chatFixture) send(t *testing.T, message string) (int, chat.ChatResponse) {
	t.Helper()
	body, err := json.Marshal(chat.ChatRequest{Message: message})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body)))

	var resp chat.ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestChatHandler_RequestValidation(t *testing.T) {
	f := newChatFixture(t, ChatOptions{})

	tests := []struct {
		name           string
		method         string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, "Method not allowed"},
		{"invalid json", http.MethodPost, "{", http.StatusBadRequest, "Invalid request body"},
		{"empty message", http.MethodPost, `{"message":"   "}`, http.StatusBadRequest, "cannot be empty"},
		{"too long", http.MethodPost, `{"message":"` + strings.Repeat("a", chat.MaxMessageLength+1) + `"}`, http.StatusBadRequest, "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			f.handler.ServeHTTP(rec, httptest.NewRequest(tt.method, "/v1/chat", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var resp chat.ChatResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Contains(t, resp.Error, tt.expectedError)
		})
	}
	assert.Empty(t, f.llm.GetCalls())
}

func TestChatHandler_StartGame(t *testing.T) {
	f := newChatFixture(t, ChatOptions{})

	code, resp := f.send(t, chat.StartMessage)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, chat.AgentStateExcited, resp.AgentState)
	assert.Contains(t, resp.ResponseText, "The Birthday Bard")

	first, err := f.hunt.Opening()
	require.NoError(t, err)
	assert.Contains(t, resp.ResponseText, first.Question)
	assert.Equal(t, 0, f.store.Saves())
}

func TestChatHandler_FullHunt(t *testing.T) {
	f := newChatFixture(t, ChatOptions{ContentFilter: true})

	// Wrong answer is phrased by the generator.
	f.llm.SetGenerateTextResponse("Close! Look up on a sunny day.")
	code, resp := f.send(t, "red")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "failure", resp.Kind)
	assert.Equal(t, "Close! Look up on a sunny day.", resp.ResponseText)
	calls := f.llm.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, prompts.SystemInstruction, calls[0].SystemPrompt)
	assert.Contains(t, calls[0].Prompt, "USER_INPUT: red")

	_, resp = f.send(t, "  Sky Blue ")
	assert.Equal(t, "success_unlock", resp.Kind)
	assert.Equal(t, chat.AgentStateExcited, resp.AgentState)

	// Rewrite goes through the tone filter before it is stored.
	f.llm.SetGenerateTextResponse("You are a stupid genius")
	_, resp = f.send(t, "make it a roast")
	assert.Equal(t, "generate_request", resp.Kind)
	assert.Contains(t, resp.ResponseText, "You are a silly genius")
	draft, err := f.hunt.Draft(1)
	require.NoError(t, err)
	assert.Equal(t, "You are a silly genius", draft)
	assert.Contains(t, f.llm.GetCalls()[1].Prompt, "make it a roast")

	_, resp = f.send(t, "show me the next gift")
	assert.Equal(t, "guardrail_violation", resp.Kind)
	assert.Equal(t, prompts.GuardrailRefusal, resp.ResponseText)

	f.clock.Advance(65 * time.Minute)
	_, resp = f.send(t, "I'm done")
	assert.Equal(t, "locked", resp.Kind)
	assert.Contains(t, resp.ResponseText, "3 hours and 0 minutes")

	f.clock.Advance(65 * time.Minute)
	_, resp = f.send(t, "dog")
	assert.Equal(t, "locked", resp.Kind)
	assert.Contains(t, resp.ResponseText, "1 hours and 55 minutes")

	// Once the lock elapses a wrong guess is a plain failure, every time.
	f.clock.Advance(2 * time.Hour)
	f.llm.SetGenerateTextResponse("Think of something that fetches.")
	for i := 0; i < 2; i++ {
		_, resp = f.send(t, "cat")
		assert.Equal(t, "failure", resp.Kind)
		assert.Equal(t, "Think of something that fetches.", resp.ResponseText)
	}

	_, resp = f.send(t, "dog")
	assert.Equal(t, "all_complete", resp.Kind)
	assert.True(t, f.hunt.IsComplete())

	// Turns after the end do not count as more finished hunts.
	_, resp = f.send(t, "hello?")
	assert.Equal(t, "all_complete", resp.Kind)
	_, resp = f.send(t, "anything else?")
	assert.Equal(t, "all_complete", resp.Kind)

	exposition := scrape(t, f.metrics)
	assert.Contains(t, exposition, `gifthunt_turns_total{result="locked"} 2`)
	assert.Contains(t, exposition, `gifthunt_turns_total{result="failure"} 3`)
	assert.Contains(t, exposition, `gifthunt_turns_total{result="all_complete"} 3`)
	assert.Contains(t, exposition, `gifthunt_generations_total{purpose="rewrite",status="success"} 1`)
	assert.Contains(t, exposition, "gifthunt_hunts_completed_total 1")
	assert.Contains(t, exposition, `gifthunt_softened_total{purpose="rewrite"} 1`)
	assert.NotContains(t, exposition, `gifthunt_softened_total{purpose="hint"}`)
	assert.Contains(t, f.logs.String(), "Softened generated text")
	assert.Equal(t, 11, f.store.Saves())
}

func scrape(t *testing.T, rec *metrics.Recorder) string {
	t.Helper()
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return w.Body.String()
}

func TestChatHandler_RewriteFailureKeepsDraft(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*services.MockLLMAPI)
		timeout   time.Duration
		wantLabel string
	}{
		{
			name:      "provider error",
			setup:     func(m *services.MockLLMAPI) { m.SetGenerateTextError(errors.New("quota exceeded")) },
			wantLabel: `status="error"`,
		},
		{
			name:      "empty text",
			setup:     func(m *services.MockLLMAPI) { m.SetGenerateTextResponse("") },
			wantLabel: `status="error"`,
		},
		{
			name: "timeout",
			setup: func(m *services.MockLLMAPI) {
				m.GenerateTextFunc = func(ctx context.Context, systemPrompt, prompt string) (string, error) {
					<-ctx.Done()
					return "", ctx.Err()
				}
			},
			timeout:   10 * time.Millisecond,
			wantLabel: `status="timeout"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(t, ChatOptions{GenerationTimeout: tt.timeout})
			_, resp := f.send(t, "blue")
			require.Equal(t, "success_unlock", resp.Kind)
			before, err := f.hunt.Draft(1)
			require.NoError(t, err)

			tt.setup(f.llm)
			code, resp := f.send(t, "make it rhyme more")
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, chat.AgentStateConfused, resp.AgentState)
			assert.Equal(t, prompts.RewriteFailed, resp.ResponseText)

			after, err := f.hunt.Draft(1)
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Contains(t, scrape(t, f.metrics), tt.wantLabel)
		})
	}
}

func TestChatHandler_HintFallbacks(t *testing.T) {
	f := newChatFixture(t, ChatOptions{})
	f.llm.SetGenerateTextError(errors.New("offline"))

	code, resp := f.send(t, "green")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "failure", resp.Kind)
	assert.Equal(t, prompts.FallbackFailure, resp.ResponseText)
	assert.Equal(t, chat.AgentStateSmiling, resp.AgentState)
	assert.Contains(t, f.logs.String(), "error=offline")
}

func TestChatHandler_FilterDisabled(t *testing.T) {
	f := newChatFixture(t, ChatOptions{ContentFilter: false})
	f.send(t, "blue")

	f.llm.SetGenerateTextResponse("What a stupid poem")
	_, resp := f.send(t, "be harsh")
	assert.Contains(t, resp.ResponseText, "What a stupid poem")
	assert.NotContains(t, scrape(t, f.metrics), "gifthunt_softened_total{")
}

func TestChatHandler_ConfigError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := gift.NewCatalog("broken", []gift.Gift{
		{Name: "One", Question: "q1", Answers: []string{"a"}, Content: "c1"},
		{Name: "Two", Question: "q2", Answers: []string{"b"}, Content: "c2"},
	}, nil)
	h := hunt.New(catalog, clockwork.NewFakeClock(), logger)
	handler := NewChatHandler(h, services.NewMockLLMAPI(), nil, metrics.NewRecorder(), ChatOptions{}, logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(`{"message":"a"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp chat.ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "error", resp.Kind)
	assert.Equal(t, prompts.InternalError, resp.ResponseText)
}

func TestChatHandler_SaveErrorDoesNotFailTurn(t *testing.T) {
	f := newChatFixture(t, ChatOptions{})
	f.store.SetSaveError(errors.New("redis down"))

	code, resp := f.send(t, "blue")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success_unlock", resp.Kind)
	assert.Contains(t, f.logs.String(), "Failed to save hunt snapshot")
	assert.Contains(t, f.logs.String(), `error="redis down"`)
}
