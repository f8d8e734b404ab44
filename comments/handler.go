package comments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/auth"
	"github.com/user/blogger-go/validation"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// RegisterRoutes registers the comment routes on the given router. The
// router is mounted under /comment with the authentication gate applied in
// main.
func (h *CommentHandler) RegisterRoutes(router chi.Router) {
	router.Post("/", h.addComment)
}

// addComment godoc
// @Summary Comment on a post
// @Description Appends a comment to an existing post on behalf of the authenticated user.
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentBody body comments.AddCommentRequest true "Comment details"
// @Success 200 {object} comments.AddCommentResponse "Comment added"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure"
// @Router /comment [post]
func (h *CommentHandler) addComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if err := validation.Struct(req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.AddComment(r.Context(), userID, req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, AddCommentResponse{Message: "Commented on Post"})
}
