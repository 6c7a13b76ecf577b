package main

import (
	"context"
	"log/slog"

	"github.com/jwebster45206/gift-hunt/internal/services"
	"github.com/jwebster45206/gift-hunt/pkg/hunt"
)

// restore loads a saved snapshot into h. A missing snapshot is not an error.
func restore(ctx context.Context, h *hunt.Hunt, store services.HuntStore, key string, log *slog.Logger) error {
	state, err := store.LoadHunt(ctx, key)
	if err != nil {
		return err
	}
	if state == nil {
		log.Info("No saved hunt, starting fresh", "key", key)
		return nil
	}
	if err := h.Restore(state); err != nil {
		return err
	}
	log.Info("Hunt restored", "key", key, "saved_at", state.SavedAt, "complete", h.IsComplete())
	return nil
}
