package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	postdomain "devconnector/backend/internal/domain/post"
	userdomain "devconnector/backend/internal/domain/user"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type postRequest struct {
	Text string `json:"text"`
}

func (r postRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("Text is required")),
	)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var payload postRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !checkValid(w, payload) {
		return
	}

	p, err := s.postService.Create(r.Context(), userID, payload.Text)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error("post creation failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.postService.List(r.Context())
	if err != nil {
		s.logger.Error("post list failed", "error", err)
		writeServerError(w)
		return
	}
	if posts == nil {
		posts = []*postdomain.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handlePostByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.postService.Get(r.Context(), id)
	if err != nil {
		s.writePostError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.postService.Delete(r.Context(), userID, id); err != nil {
		s.writePostError(w, err)
		return
	}

	writeMsg(w, http.StatusOK, "Post removed")
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	likes, err := s.postService.Like(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, postdomain.ErrAlreadyLiked) {
			writeMsg(w, http.StatusBadRequest, "Post already liked")
			return
		}
		s.writePostError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (s *Server) handleUnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	likes, err := s.postService.Unlike(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, postdomain.ErrNotLiked) {
			writeMsg(w, http.StatusBadRequest, "Post has not yet been liked")
			return
		}
		s.writePostError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var payload postRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !checkValid(w, payload) {
		return
	}

	comments, err := s.postService.AddComment(r.Context(), userID, id, payload.Text)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		s.writePostError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) handleRemoveComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	commentID := chi.URLParam(r, "comment_id")

	comments, err := s.postService.RemoveComment(r.Context(), userID, id, commentID)
	if err != nil {
		if errors.Is(err, postdomain.ErrCommentNotFound) {
			writeMsg(w, http.StatusNotFound, "Comment does not exist")
			return
		}
		s.writePostError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) writePostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, postdomain.ErrPostNotFound):
		writeMsg(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, postdomain.ErrNotAuthorized):
		writeMsg(w, http.StatusUnauthorized, "User not authorized")
	default:
		s.logger.Error("post operation failed", "error", err)
		writeServerError(w)
	}
}
