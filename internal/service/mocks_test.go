package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/rs/xid"

	"github.com/dereden/bloglist/internal/apperror"
	"github.com/dereden/bloglist/internal/model"
)

// Hand-written in-memory mocks for the repository interfaces. They store
// copies, never the caller's pointers, so tests can't accidentally share
// state with the service under test. IDs come from the same generator as
// the real store so validateID accepts them.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockUserRepo struct {
	users map[string]*model.User // keyed by id
	err   error                  // forced failure for every method
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperror.Conflict("user", user.Username)
		}
	}
	user.ID = xid.New().String()
	if user.Blogs == nil {
		user.Blogs = []model.BlogRef{}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

type mockBlogRepo struct {
	blogs map[string]*model.Blog
	err   error
}

func newMockBlogRepo() *mockBlogRepo {
	return &mockBlogRepo{blogs: make(map[string]*model.Blog)}
}

func (m *mockBlogRepo) Create(_ context.Context, blog *model.Blog) error {
	if m.err != nil {
		return m.err
	}
	blog.ID = xid.New().String()
	if blog.Comments == nil {
		blog.Comments = []string{}
	}
	stored := *blog
	m.blogs[blog.ID] = &stored
	return nil
}

func (m *mockBlogRepo) GetByID(_ context.Context, id string) (*model.Blog, error) {
	if m.err != nil {
		return nil, m.err
	}
	blog, ok := m.blogs[id]
	if !ok {
		return nil, apperror.NotFound("blog", id)
	}
	result := *blog
	return &result, nil
}

func (m *mockBlogRepo) List(_ context.Context) ([]model.Blog, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]model.Blog, 0, len(m.blogs))
	for _, b := range m.blogs {
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBlogRepo) Update(_ context.Context, blog *model.Blog) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.blogs[blog.ID]; !ok {
		return apperror.NotFound("blog", blog.ID)
	}
	stored := *blog
	m.blogs[blog.ID] = &stored
	return nil
}

func (m *mockBlogRepo) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.blogs[id]; !ok {
		return apperror.NotFound("blog", id)
	}
	delete(m.blogs, id)
	return nil
}
