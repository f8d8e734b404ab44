package posts

import (
	"time"

	"github.com/user/blogger-go/comments"
)

// CreatorSummary is the author projection embedded in post responses.
type CreatorSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Post is a blog post with its author and comments resolved.
type Post struct {
	ID        int                `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Creator   CreatorSummary     `json:"creator"`
	Comments  []comments.Comment `json:"comments"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CreatePostRequest is the body for creating a post.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest is the body for replacing a post's title and content.
type UpdatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// ListPostsResponse is the paginated listing envelope.
type ListPostsResponse struct {
	Message    string `json:"message"`
	Posts      []Post `json:"posts"`
	TotalItems int    `json:"totalItems"`
}

// UserPostsResponse wraps the authenticated user's own posts.
type UserPostsResponse struct {
	Data []Post `json:"data"`
}

// CreatePostResponse is returned after a successful creation. Creator is
// repeated at the top level in addition to the embedded copy in Post.
type CreatePostResponse struct {
	Message string         `json:"message"`
	Post    Post           `json:"post"`
	Creator CreatorSummary `json:"creator"`
}

// GetPostResponse wraps a single fetched post.
type GetPostResponse struct {
	Message string `json:"message"`
	Post    Post   `json:"post"`
}

// UpdatePostResponse is returned after a successful update.
type UpdatePostResponse struct {
	Message string `json:"message"`
	Post    Post   `json:"post"`
}

// DeletePostResponse is returned after a successful deletion.
type DeletePostResponse struct {
	Message string `json:"message"`
}
