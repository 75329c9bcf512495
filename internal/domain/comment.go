package domain

import "time"

// Comment is an immutable message attached to a complaint.
type Comment struct {
	ID          string
	ComplaintID string
	AuthorID    string
	Content     string
	CreatedAt   time.Time

	// Author is populated when the thread is loaded joined with profiles.
	Author *CommentAuthor
}

// CommentAuthor carries the commenter identity shown alongside a comment.
type CommentAuthor struct {
	FullName string
	Role     Role
}
