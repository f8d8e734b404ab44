package comments

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/events"
)

// CommentService defines the comment operations. Handlers and the posts
// package depend on this interface rather than the concrete implementation.
type CommentService interface {
	AddComment(ctx context.Context, userID int, req AddCommentRequest) error
	ListForPost(ctx context.Context, postID int) ([]Comment, error)
	ListForPosts(ctx context.Context, postIDs []int) (map[int][]Comment, error)
}

type commentServiceImpl struct {
	db  *pgxpool.Pool
	bus events.Bus
}

// NewCommentService creates a CommentService backed by the given pool,
// publishing comment events onto bus.
func NewCommentService(db *pgxpool.Pool, bus events.Bus) CommentService {
	return &commentServiceImpl{db: db, bus: bus}
}

// AddComment appends a comment to an existing post. The post must exist
// (404 otherwise); any authenticated user may comment, ownership is not
// checked. Prior comments keep their order — the new comment is strictly
// appended.
func (s *commentServiceImpl) AddComment(ctx context.Context, userID int, req AddCommentRequest) error {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, req.PostID).Scan(&exists)
	if err != nil {
		return apperror.NewDatabaseError("failed to look up post", err)
	}
	if !exists {
		return apperror.NewNotFoundError("post not found!", nil)
	}

	query := `INSERT INTO comments (post_id, creator, comment) VALUES ($1, $2, $3)`
	if _, err := s.db.Exec(ctx, query, req.PostID, userID, req.Comment); err != nil {
		return apperror.NewDatabaseError("failed to add comment", err)
	}

	s.bus.Publish(events.NewEvent(events.TypeCommentAdded, req.PostID, userID, time.Now()))
	return nil
}

// ListForPost returns a post's comments in insertion order.
func (s *commentServiceImpl) ListForPost(ctx context.Context, postID int) ([]Comment, error) {
	query := `SELECT id, post_id, creator, comment, created_at
	          FROM comments WHERE post_id = $1 ORDER BY id`
	rows, err := s.db.Query(ctx, query, postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	defer rows.Close()

	return scanComments(rows)
}

// ListForPosts loads the comments of several posts in one query, grouped by
// post ID. Used by the listing endpoint to embed each post's comments
// without one query per post.
func (s *commentServiceImpl) ListForPosts(ctx context.Context, postIDs []int) (map[int][]Comment, error) {
	grouped := make(map[int][]Comment, len(postIDs))
	if len(postIDs) == 0 {
		return grouped, nil
	}

	query := `SELECT id, post_id, creator, comment, created_at
	          FROM comments WHERE post_id = ANY($1) ORDER BY id`
	rows, err := s.db.Query(ctx, query, postIDs)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	defer rows.Close()

	all, err := scanComments(rows)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		grouped[c.PostID] = append(grouped[c.PostID], c)
	}
	return grouped, nil
}

func scanComments(rows pgx.Rows) ([]Comment, error) {
	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Creator, &c.Comment, &c.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan comment", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read comments", err)
	}
	return comments, nil
}
