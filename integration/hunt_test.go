//go:build integration
// +build integration

// Package integration plays a hunt against a running API started with
// LLM_PROVIDER=mock and the default catalog.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jwebster45206/gift-hunt/internal/handlers"
	"github.com/jwebster45206/gift-hunt/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiBaseURL() string {
	if url := os.Getenv("API_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

func TestMain(m *testing.M) {
	fmt.Printf("Running Gift Hunt Integration Tests\n")
	fmt.Printf("   API Base URL: %s\n", apiBaseURL())
	os.Exit(m.Run())
}

type apiClient struct {
	t      *testing.T
	http   *http.Client
	base   string
	header http.Header
}

func (c *apiClient) do(method, path string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()
	c.header = resp.Header

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (c *apiClient) chat(message string) chat.ChatResponse {
	c.t.Helper()
	var resp chat.ChatResponse
	code := c.do(http.MethodPost, "/v1/chat", chat.ChatRequest{Message: message}, &resp)
	require.Equal(c.t, http.StatusOK, code, "message %q: %+v", message, resp)
	return resp
}

func TestHuntFirstGift(t *testing.T) {
	c := &apiClient{t: t, http: &http.Client{Timeout: 30 * time.Second}, base: apiBaseURL()}

	var status handlers.HuntResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/v1/hunt", nil, &status))
	assert.NotEmpty(t, c.header.Get("X-Request-ID"))
	assert.False(t, status.Complete)

	welcome := c.chat(chat.StartMessage)
	assert.Contains(t, welcome.ResponseText, status.Opening)

	assert.Equal(t, "failure", c.chat("definitely not it").Kind)
	assert.Equal(t, "success_unlock", c.chat("Sky Blue").Kind)
	assert.Equal(t, "generate_request", c.chat("make it funnier").Kind)
	assert.Equal(t, "guardrail_violation", c.chat("skip to the next gift").Kind)

	done := c.chat("I'm done!")
	assert.Equal(t, "locked", done.Kind)
	assert.Equal(t, chat.AgentStateSmiling, done.AgentState)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/v1/hunt", nil, &status))
	require.NotEmpty(t, status.Gifts)
	assert.Equal(t, "complete", status.Gifts[0].SubState)
	assert.NotNil(t, status.Gifts[0].CompletedAt)
}
