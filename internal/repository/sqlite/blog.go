package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/dereden/bloglist/internal/apperror"
	"github.com/dereden/bloglist/internal/model"
	"github.com/dereden/bloglist/internal/repository"
)

// BlogDB implements repository.BlogRepository on the shared pool.
// Obtain one via DB.Blogs().
type BlogDB struct {
	conn *sql.DB
}

// compile-time check against the repository interface
var _ repository.BlogRepository = (*BlogDB)(nil)

// encodeComments serializes the ordered comment list into the JSON array
// stored in the comments column. nil and empty both become "[]" so reads
// never see SQL NULL or a missing value.
func encodeComments(comments []string) (string, error) {
	if comments == nil {
		comments = []string{}
	}
	raw, err := json.Marshal(comments)
	if err != nil {
		return "", fmt.Errorf("sqlite: encoding comments: %w", err)
	}
	return string(raw), nil
}

func decodeComments(raw string) ([]string, error) {
	comments := []string{}
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		return nil, fmt.Errorf("sqlite: decoding comments: %w", err)
	}
	return comments, nil
}

// Create inserts a new blog owned by blog.UserID. The ID and timestamps
// are generated here and written back through the pointer.
//
// The foreign key on user_id guarantees the owner exists; since the owner
// id comes from a validated token this only trips if the account was
// deleted between authentication and insert.
func (db *BlogDB) Create(ctx context.Context, blog *model.Blog) error {
	blog.ID = xid.New().String()
	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	comments, err := encodeComments(blog.Comments)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO blogs (id, title, author, url, likes, comments, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		comments,
		blog.UserID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}

	if blog.Comments == nil {
		blog.Comments = []string{}
	}
	return nil
}

// GetByID retrieves a single blog with its owner projection populated.
// Returns apperror.ErrNotFound if no blog exists with that id.
func (db *BlogDB) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var (
		b        model.Blog
		comments string
		owner    model.UserRef
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT b.id, b.title, b.author, b.url, b.likes, b.comments, b.user_id,
		        b.created_at, b.updated_at, u.username
		 FROM blogs b
		 JOIN users u ON u.id = b.user_id
		 WHERE b.id = ?`,
		id,
	).Scan(
		&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &comments, &b.UserID,
		&b.CreatedAt, &b.UpdatedAt, &owner.Username,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %s: %w", id, err)
	}

	if b.Comments, err = decodeComments(comments); err != nil {
		return nil, err
	}
	owner.ID = b.UserID
	b.User = &owner

	return &b, nil
}

// List retrieves all blogs, oldest first, each with its owner populated.
// The owner comes from the same JOIN — one query for the whole listing.
func (db *BlogDB) List(ctx context.Context) ([]model.Blog, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT b.id, b.title, b.author, b.url, b.likes, b.comments, b.user_id,
		        b.created_at, b.updated_at, u.username
		 FROM blogs b
		 JOIN users u ON u.id = b.user_id
		 ORDER BY b.created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := []model.Blog{}
	for rows.Next() {
		var (
			b        model.Blog
			comments string
			owner    model.UserRef
		)
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &comments, &b.UserID,
			&b.CreatedAt, &b.UpdatedAt, &owner.Username,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}
		if b.Comments, err = decodeComments(comments); err != nil {
			return nil, err
		}
		owner.ID = b.UserID
		b.User = &owner
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}

	return blogs, nil
}

// Update overwrites title, author, url, likes, and comments of an existing
// blog. The owner (user_id) and created_at are immutable.
//
// RowsAffected detects "not found" without a separate SELECT.
func (db *BlogDB) Update(ctx context.Context, blog *model.Blog) error {
	blog.UpdatedAt = time.Now()

	comments, err := encodeComments(blog.Comments)
	if err != nil {
		return err
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE blogs
		 SET title = ?, author = ?, url = ?, likes = ?, comments = ?, updated_at = ?
		 WHERE id = ?`,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		comments,
		blog.UpdatedAt,
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating blog %s: %w", blog.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", blog.ID)
	}

	return nil
}

// Delete removes a blog by id. Because the owner's blog set is derived
// from blogs.user_id, this single-row delete also removes the blog from
// the owner's populated blog list — there is no second write to keep in
// sync.
func (db *BlogDB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", id)
	}

	return nil
}
