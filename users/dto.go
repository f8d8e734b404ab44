// Package users covers the user resource: registration, login, profile
// retrieval, profile update, and account deletion. This file defines the
// request and response shapes of the /user endpoints; the `validate` tags
// are the declared payload schema.
package users

import "time"

// RegisterRequest is the payload for POST /user/create.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Name     string `json:"name" validate:"required" example:"Jane Blogger"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// LoginRequest is the payload for POST /user/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// UpdateUserRequest is the payload for PUT /user/update/{userId}.
// Email is always required; name and password are optional and left
// unchanged when omitted.
type UpdateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserResponse is the user record as exposed to clients. The password digest
// is never included. Posts is the ordered list of the user's post IDs.
type UserResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Posts     []int     `json:"posts"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterResponse is the success envelope for POST /user/create.
type RegisterResponse struct {
	Token   string `json:"token"`
	Message string `json:"message" example:"User created!"`
	UserID  int    `json:"userId"`
}

// LoginResponse is the success envelope for POST /user/login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID int    `json:"userId"`
}

// GetUserResponse is the success envelope for GET /user/{userId}.
type GetUserResponse struct {
	Message string       `json:"message" example:"user fetched"`
	User    UserResponse `json:"user"`
}

// UpdateUserResponse is the success envelope for PUT /user/update/{userId}.
type UpdateUserResponse struct {
	Message string `json:"message" example:"User updated!"`
	UserID  int    `json:"userId"`
}

// DeleteUserResponse is the success envelope for DELETE /user/delete/{userId}.
type DeleteUserResponse struct {
	Message string `json:"message" example:"User Deleted"`
}
