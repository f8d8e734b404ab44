package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/auth"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// UserService provides the business logic behind the /user endpoints.
type UserService struct {
	db     *pgxpool.Pool
	tokens *auth.TokenService
}

// NewUserService creates a new UserService.
func NewUserService(db *pgxpool.Pool, tokens *auth.TokenService) *UserService {
	return &UserService{db: db, tokens: tokens}
}

// Register creates a new user with a hashed password and immediately issues
// a bearer token for the fresh account. A duplicate email is a conflict
// (409), reported before any token is issued.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)

	var userID int
	query := `INSERT INTO users (email, name, password) VALUES ($1, $2, $3) RETURNING id`
	err = s.db.QueryRow(ctx, query, email, req.Name, digest).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "email") {
			return nil, apperror.NewConflictError("E-mail address already exists.", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	token, err := s.tokens.Issue(userID, email)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &RegisterResponse{
		Token:   token,
		Message: "User created!",
		UserID:  userID,
	}, nil
}

// Login verifies the credentials and returns a fresh bearer token. Unknown
// email and wrong password are deliberately indistinguishable: both answer
// 401 "invalid credentials" so the endpoint cannot be used to enumerate
// accounts.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var (
		userID int
		email  string
		digest string
	)
	query := `SELECT id, email, password FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, strings.ToLower(req.Email)).Scan(&userID, &email, &digest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if !auth.CheckPassword(req.Password, digest) {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	token, err := s.tokens.Issue(userID, email)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}

	return &LoginResponse{Token: token, UserID: userID}, nil
}

// GetUser retrieves a user record together with the ordered list of the
// user's post IDs.
func (s *UserService) GetUser(ctx context.Context, userID int) (*UserResponse, error) {
	var user UserResponse
	query := `SELECT id, email, name, role, created_at, updated_at FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found!", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	postIDs, err := s.postIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Posts = postIDs

	return &user, nil
}

// Update changes a user's email and optionally their name and password.
// The target must exist (404) and must be the authenticated user (403).
func (s *UserService) Update(ctx context.Context, targetID, authUserID int, req UpdateUserRequest) error {
	if err := s.assertExists(ctx, targetID); err != nil {
		return err
	}
	if err := auth.AssertOwner(targetID, authUserID); err != nil {
		return err
	}

	email := strings.ToLower(req.Email)
	name := req.Name

	var digest *string
	if req.Password != nil && *req.Password != "" {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return err
		}
		digest = &hashed
	}

	// COALESCE keeps the stored value when the optional fields are omitted.
	query := `UPDATE users
	          SET email = $1,
	              name = COALESCE($2, name),
	              password = COALESCE($3, password),
	              updated_at = $4
	          WHERE id = $5`
	_, err := s.db.Exec(ctx, query, email, name, digest, time.Now(), targetID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "email") {
			return apperror.NewConflictError("E-mail address already exists.", nil)
		}
		return apperror.NewDatabaseError("failed to update user", err)
	}

	return nil
}

// Delete removes a user account. The target must exist (404) and must be the
// authenticated user (403). The schema cascades the deletion to the user's
// posts and, through them, their comments.
func (s *UserService) Delete(ctx context.Context, targetID, authUserID int) error {
	if err := s.assertExists(ctx, targetID); err != nil {
		return err
	}
	if err := auth.AssertOwner(targetID, authUserID); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, targetID); err != nil {
		return apperror.NewDatabaseError("failed to delete user", err)
	}
	return nil
}

func (s *UserService) assertExists(ctx context.Context, userID int) error {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return apperror.NewDatabaseError("failed to look up user", err)
	}
	if !exists {
		return apperror.NewNotFoundError("user not found!", nil)
	}
	return nil
}

func (s *UserService) postIDs(ctx context.Context, userID int) ([]int, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM posts WHERE creator = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list user's posts", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read post ids", err)
	}
	return ids, nil
}
