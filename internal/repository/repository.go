// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage provides the production implementation;
// tests use in-memory mocks.
package repository

import (
	"context"

	"github.com/dereden/bloglist/internal/model"
)

// UserRepository persists user accounts.
//
// Read methods return users with their Blogs projection populated
// ({id, title, author, url} per owned blog).
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// BlogRepository persists blog posts.
//
// Read methods return blogs with the owner projection populated
// ({username, id}).
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id string) error
}

// Resetter wipes all persisted state. Only the test-mode reset endpoint
// uses it; production builds never mount that route.
type Resetter interface {
	Reset(ctx context.Context) error
}
