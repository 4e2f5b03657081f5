package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/dereden/bloglist/internal/apperror"
	"github.com/dereden/bloglist/internal/model"
	"github.com/dereden/bloglist/internal/repository"
)

// UserDB implements repository.UserRepository on the shared pool.
// Obtain one via DB.Users().
type UserDB struct {
	conn *sql.DB
}

// compile-time checks against the repository interfaces
var (
	_ repository.UserRepository = (*UserDB)(nil)
	_ repository.Resetter       = (*DB)(nil)
)

// Create inserts a new user. The ID and timestamps are generated here and
// written back through the pointer, so the caller gets the canonical record.
//
// A duplicate username trips the UNIQUE constraint; we translate that into
// apperror.Conflict so the service layer can surface it as a validation
// failure without knowing any SQLite error strings.
func (db *UserDB) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("sqlite: creating user %s: %w", user.Username, err)
	}

	if user.Blogs == nil {
		user.Blogs = []model.BlogRef{}
	}
	return nil
}

// GetByID retrieves a user by id with their blog projection populated.
// Returns apperror.ErrNotFound if no user exists with that id.
func (db *UserDB) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	blogs, err := db.blogRefsForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Blogs = blogs

	return &u, nil
}

// GetByUsername retrieves a user by their unique username. Used by
// registration (uniqueness check) and login (credential lookup); the blog
// projection is populated for consistency with GetByID.
func (db *UserDB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
		 FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user by username %s: %w", username, err)
	}

	blogs, err := db.blogRefsForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Blogs = blogs

	return &u, nil
}

// List retrieves all users, each with their blog projection populated.
//
// The blogs for all users are fetched in one query and grouped in memory —
// two round-trips total instead of one per user.
func (db *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
		 FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		u.Blogs = []model.BlogRef{}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	refRows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, author, url, user_id FROM blogs ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blog refs: %w", err)
	}
	defer refRows.Close()

	byUser := make(map[string][]model.BlogRef)
	for refRows.Next() {
		var ref model.BlogRef
		var userID string
		if err := refRows.Scan(&ref.ID, &ref.Title, &ref.Author, &ref.URL, &userID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog ref row: %w", err)
		}
		byUser[userID] = append(byUser[userID], ref)
	}
	if err := refRows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blog refs: %w", err)
	}

	for i := range users {
		if refs, ok := byUser[users[i].ID]; ok {
			users[i].Blogs = refs
		}
	}

	return users, nil
}

// blogRefsForUser returns the {id, title, author, url} projection of the
// blogs owned by the given user, oldest first.
func (db *UserDB) blogRefsForUser(ctx context.Context, userID string) ([]model.BlogRef, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, author, url FROM blogs
		 WHERE user_id = ? ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs for user %s: %w", userID, err)
	}
	defer rows.Close()

	refs := []model.BlogRef{}
	for rows.Next() {
		var ref model.BlogRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.Author, &ref.URL); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog ref row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blog refs: %w", err)
	}

	return refs, nil
}
