// Package comments is responsible for comment functionality: appending a
// comment to a post and loading the comment lists that posts embed in their
// responses. Comments are structurally owned by their post — they are never
// independently edited or deleted, and deleting a post removes them.
package comments

import "time"

// Comment represents a single comment on a post.
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"postId"`
	Creator   int       `json:"creator"` // The commenting user's ID
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddCommentRequest is the payload for POST /comment.
type AddCommentRequest struct {
	PostID  int    `json:"postId" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

// AddCommentResponse is the success envelope for POST /comment.
type AddCommentResponse struct {
	Message string `json:"message" example:"Commented on Post"`
}
