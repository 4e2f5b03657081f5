// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// WHY PasswordHash WITH json:"-"?
// The hash must never leave the server. The `json:"-"` tag tells
// encoding/json to skip the field entirely, so no handler can leak it by
// accident — even one that just encodes the whole struct.
//
// Blogs is the populated projection of the blogs this user owns. It is not
// stored on the user row; the repository derives it from blogs.user_id at
// read time (the relational version of a document store's "populate").
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Blogs        []BlogRef `json:"blogs"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// BlogRef is the reduced blog shape embedded in user responses.
// Field selection matches what GET /api/users returns: title, url, author, id.
type BlogRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}
