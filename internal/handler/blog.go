// Package handler contains the HTTP layer: request parsing, response
// shaping, and the mapping from domain errors to status codes. No business
// rules live here — handlers delegate to the service layer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dereden/bloglist/internal/auth"
	"github.com/dereden/bloglist/internal/service"
)

// BlogHandler serves the /api/blogs routes.
type BlogHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

func NewBlogHandler(blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger}
}

// HandleList returns all blogs with their owner populated.
//
// HTTP: GET /api/blogs (public)
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blogs)
}

// HandleGetByID returns a single blog.
//
// HTTP: GET /api/blogs/{id} (public)
// 400 for a malformed id, 404 for a well-formed id that matches nothing.
func (h *BlogHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// HandleCreate creates a blog owned by the authenticated caller.
//
// HTTP: POST /api/blogs (auth required)
// BODY: {"title": "...", "author": "...", "url": "...", "likes": 0}
// likes may be omitted and defaults to 0.
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't trust route wiring.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication token required",
		})
		return
	}

	var in service.CreateBlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	blog, err := h.blogs.Create(r.Context(), identity, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blog)
}

// HandleUpdate applies a full-overwrite update to a blog.
//
// HTTP: PUT /api/blogs/{id} (auth required)
// BODY: {"title","author","url","likes","comments"} — all fields applied
// as given; unchanged fields must be echoed back by the caller.
// 403 when a non-owner changes any content field.
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication token required",
		})
		return
	}

	var in service.UpdateBlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	blog, err := h.blogs.Update(r.Context(), identity, r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleDelete removes a blog. Owner only.
//
// HTTP: DELETE /api/blogs/{id} (auth required)
// 204 on success; the blog also disappears from the owner's blog set.
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "valid authentication token required",
		})
		return
	}

	if err := h.blogs.Delete(r.Context(), identity, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
