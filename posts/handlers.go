package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/auth"
	"github.com/user/blogger-go/validation"
)

// PostHandlers provides the HTTP handlers for the /post routes.
type PostHandlers struct {
	service *PostService
}

// NewPostHandlers creates new PostHandlers.
func NewPostHandlers(service *PostService) *PostHandlers {
	return &PostHandlers{service: service}
}

func postIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "postId"))
	if err != nil || id <= 0 {
		return 0, apperror.NewNotFoundError("post not found!", nil)
	}
	return id, nil
}

// HandleList godoc
// @Summary List posts
// @Description Returns one page of posts (10 per page), newest-first, with the total count.
// @Tags Posts
// @Produce json
// @Param page query int false "Page number, 1-based" default(1)
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, title)
// @Success 200 {object} posts.ListPostsResponse "Posts fetched"
// @Router /post [get]
func (h *PostHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.service.List(r.Context(), r.URL.Query().Get("page"), r.URL.Query().Get("sortBy"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleUserPosts godoc
// @Summary List own posts
// @Description Returns every post created by the authenticated user.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} posts.UserPostsResponse "User posts"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Router /post/user-post [get]
func (h *PostHandlers) HandleUserPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
			return
		}

		userPosts, err := h.service.ByUser(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, UserPostsResponse{Data: userPosts})
	}
}

// HandleGet godoc
// @Summary Fetch a post
// @Description Returns a single post with its comments. No authentication required.
// @Tags Posts
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {object} posts.GetPostResponse "Post fetched"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /post/{postId} [get]
func (h *PostHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := postIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		post, err := h.service.Get(r.Context(), postID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, GetPostResponse{Message: "Post fetched", Post: *post})
	}
}

// HandleCreate godoc
// @Summary Create a post
// @Description Creates a post owned by the authenticated user.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body posts.CreatePostRequest true "Post contents"
// @Success 201 {object} posts.CreatePostResponse "Post created"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure"
// @Router /post [post]
func (h *PostHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		post, err := h.service.Create(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, CreatePostResponse{
			Message: "Post created successfully",
			Post:    *post,
			Creator: post.Creator,
		})
	}
}

// HandleUpdate godoc
// @Summary Update a post
// @Description Replaces the title and content of a post. Owner only.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Param postBody body posts.UpdatePostRequest true "New post contents"
// @Success 200 {object} posts.UpdatePostResponse "Post updated"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 403 {object} apperror.ErrorResponse "Not the post owner"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 422 {object} apperror.ErrorResponse "Validation failure"
// @Router /post/{postId} [put]
func (h *PostHandlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
			return
		}

		postID, err := postIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := validation.Struct(req); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		post, err := h.service.Update(r.Context(), postID, userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, UpdatePostResponse{Message: "Post Updated", Post: *post})
	}
}

// HandleDelete godoc
// @Summary Delete a post
// @Description Deletes a post and its comments. Owner only.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} posts.DeletePostResponse "Post deleted"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 403 {object} apperror.ErrorResponse "Not the post owner"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Router /post/{postId} [delete]
func (h *PostHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
			return
		}

		postID, err := postIDParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), postID, userID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, DeletePostResponse{Message: "Deleted Post"})
	}
}
