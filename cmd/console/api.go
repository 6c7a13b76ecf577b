package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jwebster45206/gift-hunt/internal/handlers"
	"github.com/jwebster45206/gift-hunt/pkg/chat"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// sendChat posts one message. Error replies that still carry response_text
// (a configuration error, for example) are returned as responses.
func sendChat(client *http.Client, baseURL, message string) (*chat.ChatResponse, error) {
	jsonData, err := json.Marshal(chat.ChatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/v1/chat", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chat.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	if chatResp.ResponseText == "" {
		if chatResp.Error != "" {
			return nil, fmt.Errorf("chat request failed: %s", chatResp.Error)
		}
		return nil, fmt.Errorf("API returned status %d with an empty reply", resp.StatusCode)
	}
	return &chatResp, nil
}

func getHunt(client *http.Client, baseURL string) (*handlers.HuntResponse, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/v1/hunt", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return doHunt(client, req)
}

func resetHunt(client *http.Client, baseURL string) (*handlers.HuntResponse, error) {
	req, err := http.NewRequest(http.MethodDelete, baseURL+"/v1/hunt", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return doHunt(client, req)
}

func doHunt(client *http.Client, req *http.Request) (*handlers.HuntResponse, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("hunt request failed: %s", errorResp.Error)
	}

	var huntResp handlers.HuntResponse
	if err := json.Unmarshal(body, &huntResp); err != nil {
		return nil, fmt.Errorf("failed to parse hunt response: %w", err)
	}
	return &huntResp, nil
}
