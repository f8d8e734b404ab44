package users

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/auth"
	"github.com/user/blogger-go/validation"
)

// UserHandlers provides the HTTP handlers for the /user routes.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// userIDParam parses the {userId} path parameter. A non-numeric value can
// never reference a user, so it reports not-found rather than a parse error.
func userIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil || id <= 0 {
		return 0, apperror.NewNotFoundError("user not found!", nil)
	}
	return id, nil
}

// HandleRegister godoc
// @Summary Register a new user
// @Description Creates a user account and returns a bearer token for it.
// @Tags Users
// @Accept json
// @Produce json
// @Param registerBody body users.RegisterRequest true "Registration details"
// @Success 201 {object} users.RegisterResponse "User created"
// @Failure 409 {object} apperror.ErrorResponse "E-mail address already exists"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure"
// @Router /user/create [post]
func (h *UserHandlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.Register(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleLogin godoc
// @Summary Log in
// @Description Verifies credentials and returns a bearer token.
// @Tags Users
// @Accept json
// @Produce json
// @Param loginBody body users.LoginRequest true "Login credentials"
// @Success 200 {object} users.LoginResponse "Login successful"
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure"
// @Router /user/login [post]
func (h *UserHandlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGetUser godoc
// @Summary Fetch a user
// @Description Returns the user record with its post ID list. Users may only fetch themselves.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} users.GetUserResponse "User fetched"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /user/{userId} [get]
func (h *UserHandlers) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authUserID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
			return
		}

		targetID, err := userIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		// A user record is owned by the user it describes.
		if err := auth.AssertOwner(targetID, authUserID); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		user, err := h.service.GetUser(r.Context(), targetID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, GetUserResponse{Message: "user fetched", User: *user})
	}
}

// HandleUpdateUser godoc
// @Summary Update a user
// @Description Updates the user's email and optionally name and password. Owner only.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param updateBody body users.UpdateUserRequest true "Fields to update"
// @Success 201 {object} users.UpdateUserResponse "User updated"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 403 {object} apperror.ErrorResponse "Not the account owner"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure"
// @Router /user/update/{userId} [put]
func (h *UserHandlers) HandleUpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authUserID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
			return
		}

		targetID, err := userIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Update(r.Context(), targetID, authUserID, req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusCreated, UpdateUserResponse{Message: "User updated!", UserID: targetID})
	}
}

// HandleDeleteUser godoc
// @Summary Delete a user
// @Description Deletes the user account and, by cascade, its posts and their comments. Owner only.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} users.DeleteUserResponse "User deleted"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 403 {object} apperror.ErrorResponse "Not the account owner"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Router /user/delete/{userId} [delete]
func (h *UserHandlers) HandleDeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authUserID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
			return
		}

		targetID, err := userIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), targetID, authUserID); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, DeleteUserResponse{Message: "User Deleted"})
	}
}
