package handler

import (
	"log/slog"
	"net/http"

	"github.com/dereden/bloglist/internal/repository"
)

// TestResetHandler wipes all persisted users and blogs.
//
// The route is mounted ONLY when the server runs with APP_ENV=test (see
// internal/server); production builds never expose it. End-to-end test
// suites call it between cases to start from a clean database.
type TestResetHandler struct {
	store  repository.Resetter
	logger *slog.Logger
}

func NewTestResetHandler(store repository.Resetter, logger *slog.Logger) *TestResetHandler {
	return &TestResetHandler{store: store, logger: logger}
}

// HandleReset deletes every user and blog.
//
// HTTP: POST /test/reset → 204
func (h *TestResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		h.logger.Error("failed to reset store", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	h.logger.Info("store reset")
	w.WriteHeader(http.StatusNoContent)
}
