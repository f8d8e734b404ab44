package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/auth"
	"github.com/user/blogger-go/comments"
	"github.com/user/blogger-go/events"
	"github.com/user/blogger-go/pagination"
)

// sortable maps the client-facing sort keys to the columns they order by.
// Anything else falls back to creation time. Listing order is always
// newest-first.
var sortable = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
}

const defaultSortField = "createdAt"

// PostService implements the post operations against PostgreSQL. Comment
// resolution is delegated to the comments package so both sides read
// through one query path.
type PostService struct {
	db       *pgxpool.Pool
	bus      events.Bus
	comments comments.CommentService
}

// NewPostService creates a PostService.
func NewPostService(db *pgxpool.Pool, bus events.Bus, commentService comments.CommentService) *PostService {
	return &PostService{db: db, bus: bus, comments: commentService}
}

// List returns one page of posts across all users, newest-first by the
// requested sort field, together with the total post count. The count is
// taken independently of the page window so totalItems covers the whole
// collection.
func (s *PostService) List(ctx context.Context, pageRaw, sortByRaw string) (*ListPostsResponse, error) {
	params := pagination.Resolve(pageRaw, sortByRaw, sortable, defaultSortField)

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, apperror.NewDatabaseError("failed to count posts", err)
	}

	// params.OrderBy is whitelisted by pagination.Resolve, never raw input.
	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.content, p.creator, u.name, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.creator
		ORDER BY p.%s DESC
		LIMIT $1 OFFSET $2`, params.OrderBy)

	rows, err := s.db.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	page, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}

	if err := s.attachComments(ctx, page); err != nil {
		return nil, err
	}

	return &ListPostsResponse{
		Message:    "Posts fetched successfully",
		Posts:      page,
		TotalItems: total,
	}, nil
}

// ByUser returns every post created by the given user, newest-first.
func (s *PostService) ByUser(ctx context.Context, userID int) ([]Post, error) {
	if err := s.assertUserExists(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.title, p.content, p.creator, u.name, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.creator
		WHERE p.creator = $1
		ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list user posts", err)
	}
	defer rows.Close()

	userPosts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}

	if err := s.attachComments(ctx, userPosts); err != nil {
		return nil, err
	}
	return userPosts, nil
}

// Create inserts a post owned by userID and returns it with the creator
// resolved. A freshly created post has no comments.
func (s *PostService) Create(ctx context.Context, userID int, req CreatePostRequest) (*Post, error) {
	if err := s.assertUserExists(ctx, userID); err != nil {
		return nil, err
	}

	var post Post
	err := s.db.QueryRow(ctx, `
		INSERT INTO posts (title, content, creator)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, created_at, updated_at`,
		req.Title, req.Content, userID,
	).Scan(&post.ID, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}

	var creatorName string
	if err := s.db.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, userID).Scan(&creatorName); err != nil {
		return nil, apperror.NewDatabaseError("failed to resolve post creator", err)
	}
	post.Creator = CreatorSummary{ID: userID, Name: creatorName}
	post.Comments = []comments.Comment{}

	s.bus.Publish(events.NewEvent(events.TypePostCreated, post.ID, userID, time.Now().UTC()))
	return &post, nil
}

// Get fetches a single post with its comments.
func (s *PostService) Get(ctx context.Context, postID int) (*Post, error) {
	var post Post
	err := s.db.QueryRow(ctx, `
		SELECT p.id, p.title, p.content, p.creator, u.name, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.creator
		WHERE p.id = $1`, postID,
	).Scan(&post.ID, &post.Title, &post.Content, &post.Creator.ID, &post.Creator.Name, &post.CreatedAt, &post.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFoundError("post not found!", nil)
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch post", err)
	}

	postComments, err := s.comments.ListForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Comments = postComments
	return &post, nil
}

// Update replaces the title and content of a post owned by userID.
func (s *PostService) Update(ctx context.Context, postID, userID int, req UpdatePostRequest) (*Post, error) {
	creator, err := s.postCreator(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := auth.AssertOwner(creator, userID); err != nil {
		return nil, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE posts SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1`, postID, req.Title, req.Content)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}

	s.bus.Publish(events.NewEvent(events.TypePostUpdated, postID, userID, time.Now().UTC()))
	return s.Get(ctx, postID)
}

// Delete removes a post owned by userID. Its comments go with it via the
// schema's cascade.
func (s *PostService) Delete(ctx context.Context, postID, userID int) error {
	creator, err := s.postCreator(ctx, postID)
	if err != nil {
		return err
	}
	if err := auth.AssertOwner(creator, userID); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID); err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}

	s.bus.Publish(events.NewEvent(events.TypePostDeleted, postID, userID, time.Now().UTC()))
	return nil
}

// postCreator resolves the owning user of a post, or a 404 if the post
// does not exist.
func (s *PostService) postCreator(ctx context.Context, postID int) (int, error) {
	var creator int
	err := s.db.QueryRow(ctx, `SELECT creator FROM posts WHERE id = $1`, postID).Scan(&creator)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperror.NewNotFoundError("post not found!", nil)
	}
	if err != nil {
		return 0, apperror.NewDatabaseError("failed to fetch post", err)
	}
	return creator, nil
}

func (s *PostService) assertUserExists(ctx context.Context, userID int) error {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return apperror.NewDatabaseError("failed to check user existence", err)
	}
	if !exists {
		return apperror.NewNotFoundError("user not found!", nil)
	}
	return nil
}

// attachComments resolves comments for a slice of posts in one query and
// attaches them in place. Posts without comments get an empty slice so the
// JSON field renders as [] rather than null.
func (s *PostService) attachComments(ctx context.Context, page []Post) error {
	if len(page) == 0 {
		return nil
	}
	ids := make([]int, len(page))
	for i, p := range page {
		ids[i] = p.ID
	}
	byPost, err := s.comments.ListForPosts(ctx, ids)
	if err != nil {
		return err
	}
	for i := range page {
		if c, ok := byPost[page[i].ID]; ok {
			page[i].Comments = c
		} else {
			page[i].Comments = []comments.Comment{}
		}
	}
	return nil
}

func scanPosts(rows pgx.Rows) ([]Post, error) {
	result := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Creator.ID, &p.Creator.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post row", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read post rows", err)
	}
	return result, nil
}
