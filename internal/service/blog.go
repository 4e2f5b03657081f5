// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier split:
//
//	Handler (HTTP)     → parses requests, writes responses
//	Service (business) → validates, enforces ownership rules, orchestrates
//	Repository (data)  → reads/writes SQLite
//
// Services receive repository interfaces, not concrete types, so tests can
// inject in-memory mocks and the HTTP layer never touches SQL.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rs/xid"

	"github.com/dereden/bloglist/internal/apperror"
	"github.com/dereden/bloglist/internal/auth"
	"github.com/dereden/bloglist/internal/model"
	"github.com/dereden/bloglist/internal/repository"
)

// validateID rejects syntactically malformed identities before any lookup.
// A malformed id is a client error (400), distinct from a well-formed id
// that matches nothing (404).
func validateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "id is required")
	}
	if _, err := xid.FromString(id); err != nil {
		return apperror.InvalidID(id)
	}
	return nil
}

// BlogService handles business logic for blog posts, including the
// ownership rules for updates and deletes.
type BlogService struct {
	blogs  repository.BlogRepository
	logger *slog.Logger
}

func NewBlogService(blogs repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		blogs:  blogs,
		logger: logger,
	}
}

// CreateBlogInput is the payload for creating a blog. Likes may be
// omitted and defaults to 0.
type CreateBlogInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// UpdateBlogInput is the payload for updating a blog.
//
// Updates use full-overwrite semantics: every field is applied as given,
// so callers must echo back the fields they do not intend to change.
// This is deliberate — it is what makes the ownership rule below checkable
// by simple value comparison.
type UpdateBlogInput struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	URL      string   `json:"url"`
	Likes    int      `json:"likes"`
	Comments []string `json:"comments"`
}

// List returns all blogs with their owner projection populated.
func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		s.logger.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, err
	}
	return blogs, nil
}

// GetByID returns one blog with its owner populated.
// Malformed id → ErrInvalidID; well-formed but absent → ErrNotFound.
func (s *BlogService) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.blogs.GetByID(ctx, id)
}

// Create validates and saves a new blog owned by the authenticated caller.
//
// Title and url are required; likes defaults to 0 and must not be
// negative. The owner's blog set reflects the new blog immediately, since
// it is derived from the blog's owner reference.
func (s *BlogService) Create(ctx context.Context, identity auth.Identity, in CreateBlogInput) (*model.Blog, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)

	if in.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if in.URL == "" {
		return nil, apperror.ValidationFailed("url", "url is required")
	}
	if in.Likes < 0 {
		return nil, apperror.ValidationFailed("likes", "likes must not be negative")
	}

	blog := &model.Blog{
		Title:    in.Title,
		Author:   strings.TrimSpace(in.Author),
		URL:      in.URL,
		Likes:    in.Likes,
		Comments: []string{},
		UserID:   identity.ID,
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.String("title", in.Title),
			slog.String("userID", identity.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("blog created",
		slog.String("id", blog.ID),
		slog.String("title", blog.Title),
		slog.String("userID", identity.ID),
	)

	// Reload so the response carries the populated owner projection.
	return s.blogs.GetByID(ctx, blog.ID)
}

// Update applies a full-overwrite patch to a blog, subject to the
// ownership rule:
//
//   - The owner may change any field.
//   - A non-owner may change only likes and comments. If the patch alters
//     any content field (title, author, url) relative to the stored
//     values, the ENTIRE update is rejected with ErrForbidden — including
//     its likes/comments changes. Nothing is written in that case.
//
// This lets any authenticated user like or comment on a blog (by echoing
// the content fields back unchanged) while content edits stay exclusive
// to the owner.
func (s *BlogService) Update(ctx context.Context, identity auth.Identity, id string, in UpdateBlogInput) (*model.Blog, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blog.UserID != identity.ID {
		contentChanged := in.Title != blog.Title ||
			in.Author != blog.Author ||
			in.URL != blog.URL
		if contentChanged {
			s.logger.Info("blog update forbidden",
				slog.String("id", id),
				slog.String("ownerID", blog.UserID),
				slog.String("callerID", identity.ID),
			)
			return nil, apperror.Forbidden("can not modify another user's blog")
		}
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if strings.TrimSpace(in.URL) == "" {
		return nil, apperror.ValidationFailed("url", "url is required")
	}
	if in.Likes < 0 {
		return nil, apperror.ValidationFailed("likes", "likes must not be negative")
	}

	blog.Title = in.Title
	blog.Author = in.Author
	blog.URL = in.URL
	blog.Likes = in.Likes
	blog.Comments = in.Comments
	if blog.Comments == nil {
		blog.Comments = []string{}
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		s.logger.Error("failed to update blog",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("blog updated",
		slog.String("id", blog.ID),
		slog.String("callerID", identity.ID),
	)

	return blog, nil
}

// Delete removes a blog. Only the owner may delete; everyone else gets
// ErrForbidden and the blog (and the owner's blog set) stays untouched.
func (s *BlogService) Delete(ctx context.Context, identity auth.Identity, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.UserID != identity.ID {
		s.logger.Info("blog delete forbidden",
			slog.String("id", id),
			slog.String("ownerID", blog.UserID),
			slog.String("callerID", identity.ID),
		)
		return apperror.Forbidden("can not delete another user's blog")
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog deleted",
		slog.String("id", id),
		slog.String("userID", identity.ID),
	)
	return nil
}
