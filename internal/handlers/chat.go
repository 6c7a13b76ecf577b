package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/gift-hunt/internal/logger"
	"github.com/jwebster45206/gift-hunt/internal/metrics"
	"github.com/jwebster45206/gift-hunt/internal/services"
	"github.com/jwebster45206/gift-hunt/pkg/chat"
	"github.com/jwebster45206/gift-hunt/pkg/hunt"
	"github.com/jwebster45206/gift-hunt/pkg/prompts"
	"github.com/jwebster45206/gift-hunt/pkg/textfilter"
)

const (
	purposeRewrite = "rewrite"
	purposeHint    = "hint"
)

type ChatOptions struct {
	HuntKey           string
	GenerationTimeout time.Duration
	ContentFilter     bool
}

// ChatHandler runs one hunt turn per request and renders the result.
type ChatHandler struct {
	hunt    *hunt.Hunt
	llm     services.LLMService
	store   services.HuntStore // nil keeps the hunt in memory only
	metrics *metrics.Recorder
	filter  *textfilter.ToneFilter
	opts    ChatOptions
	logger  *slog.Logger
}

func NewChatHandler(h *hunt.Hunt, llm services.LLMService, store services.HuntStore, rec *metrics.Recorder, opts ChatOptions, logger *slog.Logger) *ChatHandler {
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = 30 * time.Second
	}
	handler := &ChatHandler{
		hunt:    h,
		llm:     llm,
		store:   store,
		metrics: rec,
		opts:    opts,
		logger:  logger,
	}
	if opts.ContentFilter {
		handler.filter = textfilter.NewToneFilter()
	}
	return handler
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for chat endpoint", "method", r.Method, "path", r.URL.Path)
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, chat.ChatResponse{
			Error: "Method not allowed. Only POST is supported.",
		})
		return
	}

	var request chat.ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.WithError(h.logger, err).Warn("Invalid request body")
		writeJSON(w, h.logger, http.StatusBadRequest, chat.ChatResponse{
			Error: "Invalid request body. Expected JSON with 'message' field.",
		})
		return
	}
	if err := request.Validate(); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, chat.ChatResponse{Error: err.Error()})
		return
	}

	if request.Message == chat.StartMessage {
		first, err := h.hunt.Opening()
		if err != nil {
			logger.WithError(h.logger, err).Error("Hunt has no opening gift")
			writeJSON(w, h.logger, http.StatusInternalServerError, chat.ChatResponse{
				ResponseText: prompts.InternalError,
				AgentState:   chat.AgentStateConfused,
			})
			return
		}
		writeJSON(w, h.logger, http.StatusOK, prompts.Welcome(first))
		return
	}

	result := h.hunt.Advance(request.Message)
	h.metrics.RecordTurn(result.Kind().String())
	h.logger.Debug("Turn advanced", "result", result.Kind())

	status := http.StatusOK
	var response chat.ChatResponse
	switch res := result.(type) {
	case hunt.GenerateRequest:
		response = h.rewrite(r.Context(), res)
	case hunt.Failure, hunt.Unknown:
		response = h.hint(r.Context(), res, request.Message)
	default:
		var ok bool
		response, ok = prompts.Render(res)
		if !ok {
			h.logger.Error("Unhandled result kind", "result", res.Kind())
			response = chat.ChatResponse{ResponseText: prompts.FallbackUnknown, AgentState: chat.AgentStateConfused}
		}
		if _, isErr := res.(hunt.ConfigError); isErr {
			status = http.StatusInternalServerError
		}
		if done, ok := res.(hunt.AllComplete); ok && done.Finished {
			h.metrics.RecordCompletion()
		}
	}

	h.save(r.Context())
	writeJSON(w, h.logger, status, response)
}

// rewrite runs a customization request outside the hunt lock and writes the
// new draft back. On any failure the previous draft stays current.
func (h *ChatHandler) rewrite(ctx context.Context, req hunt.GenerateRequest) chat.ChatResponse {
	failed := chat.ChatResponse{
		ResponseText: prompts.RewriteFailed,
		AgentState:   chat.AgentStateConfused,
		Kind:         req.Kind().String(),
	}

	text, err := h.generate(ctx, purposeRewrite, "", req.Prompt)
	if err != nil {
		return failed
	}
	text = h.soften(purposeRewrite, text)
	if err := h.hunt.UpdateDraft(req.Ordinal, text); err != nil {
		logger.WithError(h.logger, err).Warn("Draft write-back rejected", "gift", req.Ordinal)
		return failed
	}
	return prompts.Revised(text)
}

// hint phrases a wrong answer or an unclassified turn in the persona's voice.
func (h *ChatHandler) hint(ctx context.Context, res hunt.Result, message string) chat.ChatResponse {
	response := chat.ChatResponse{
		ResponseText: prompts.FallbackFailure,
		AgentState:   chat.AgentStateSmiling,
		Kind:         res.Kind().String(),
	}
	if _, ok := res.(hunt.Unknown); ok {
		response.ResponseText = prompts.FallbackUnknown
		response.AgentState = chat.AgentStateConfused
	}

	system, prompt, err := prompts.New().WithResult(res).WithUserMessage(message).Build()
	if err != nil {
		logger.WithError(h.logger, err).Error("Failed to build hint prompt")
		return response
	}
	text, err := h.generate(ctx, purposeHint, system, prompt)
	if err != nil {
		return response
	}
	response.ResponseText = h.soften(purposeHint, text)
	return response
}

func (h *ChatHandler) generate(ctx context.Context, purpose, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.opts.GenerationTimeout)
	defer cancel()

	start := time.Now()
	text, err := h.llm.GenerateText(ctx, system, prompt)
	elapsed := time.Since(start)

	if err == nil && text == "" {
		err = services.ErrEmptyResponse
	}
	switch {
	case err == nil:
		h.metrics.RecordGeneration(purpose, "success", elapsed)
		return text, nil
	case errors.Is(err, context.DeadlineExceeded):
		h.metrics.RecordGeneration(purpose, "timeout", elapsed)
		h.logger.Warn("Generation timed out", "purpose", purpose, "timeout", h.opts.GenerationTimeout)
	default:
		h.metrics.RecordGeneration(purpose, "error", elapsed)
		logger.WithError(h.logger, err).Error("Generation failed", "purpose", purpose)
	}
	return "", err
}

// soften runs generated text through the tone filter when it is enabled.
func (h *ChatHandler) soften(purpose, text string) string {
	if h.filter == nil || !h.filter.IsHarsh(text) {
		return text
	}
	h.metrics.RecordSoftened(purpose)
	h.logger.Info("Softened generated text", "purpose", purpose)
	return h.filter.Soften(text)
}

func (h *ChatHandler) save(ctx context.Context) {
	if h.store == nil {
		return
	}
	if err := h.store.SaveHunt(ctx, h.opts.HuntKey, h.hunt.Snapshot()); err != nil {
		logger.WithError(h.logger, err).Warn("Failed to save hunt snapshot", "key", h.opts.HuntKey)
	}
}
