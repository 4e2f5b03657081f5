package model

import "time"

// Blog represents a single blog post.
//
// Every blog has exactly one owner (UserID). Likes is a non-negative
// counter that defaults to 0. Comments is an ordered list of free-text
// strings — order is part of the data and must survive storage round-trips.
//
// The `json:"..."` tags define the wire format. UserID is internal; the
// populated User projection is what responses carry.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	Comments  []string  `json:"comments"`
	UserID    string    `json:"-"`
	User      *UserRef  `json:"user,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UserRef is the reduced owner shape embedded in blog responses:
// username and id only.
type UserRef struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}
