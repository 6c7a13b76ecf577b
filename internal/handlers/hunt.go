package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/gift-hunt/internal/logger"
	"github.com/jwebster45206/gift-hunt/internal/services"
	"github.com/jwebster45206/gift-hunt/pkg/hunt"
)

type HuntResponse struct {
	Catalog  string              `json:"catalog"`
	Complete bool                `json:"complete"`
	Opening  string              `json:"opening_question,omitempty"`
	Gifts    []hunt.GiftProgress `json:"gifts"`
}

// HuntHandler serves progress (GET) and resets the hunt (DELETE).
type HuntHandler struct {
	hunt    *hunt.Hunt
	store   services.HuntStore
	huntKey string
	logger  *slog.Logger
}

func NewHuntHandler(h *hunt.Hunt, store services.HuntStore, huntKey string, logger *slog.Logger) *HuntHandler {
	return &HuntHandler{
		hunt:    h,
		store:   store,
		huntKey: huntKey,
		logger:  logger,
	}
}

func (h *HuntHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, h.logger, http.StatusOK, h.status())
	case http.MethodDelete:
		h.hunt.Reset()
		if h.store != nil {
			if err := h.store.DeleteHunt(r.Context(), h.huntKey); err != nil {
				logger.WithError(h.logger, err).Error("Failed to delete hunt snapshot", "key", h.huntKey)
				writeJSON(w, h.logger, http.StatusInternalServerError, ErrorResponse{Error: "Hunt reset in memory but the saved snapshot could not be removed."})
				return
			}
		}
		h.logger.Info("Hunt reset", "key", h.huntKey)
		writeJSON(w, h.logger, http.StatusOK, h.status())
	default:
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed. Use GET or DELETE."})
	}
}

func (h *HuntHandler) status() HuntResponse {
	resp := HuntResponse{
		Catalog:  h.hunt.Catalog().Name,
		Complete: h.hunt.IsComplete(),
		Gifts:    h.hunt.Progress(),
	}
	if first, err := h.hunt.Opening(); err == nil {
		resp.Opening = first.Question
	}
	return resp
}
