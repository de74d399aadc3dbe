package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	userdomain "devconnector/backend/internal/domain/user"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Name is required")),
		validation.Field(&r.Email,
			validation.Required.Error("Please include a valid email"),
			is.Email.Error("Please include a valid email")),
		validation.Field(&r.Password,
			validation.Required.Error("Please enter a password with six or more characters"),
			validation.Length(6, 0).Error("Please enter a password with six or more characters")),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Please include a valid email"),
			is.Email.Error("Please include a valid email")),
		validation.Field(&r.Password,
			validation.Required.Error("Password is required")),
	)
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !checkValid(w, payload) {
		return
	}

	token, err := s.authService.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserExists) {
			writeErrors(w, http.StatusBadRequest, "User already exists")
			return
		}
		s.logger.Error("register failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !checkValid(w, payload) {
		return
	}

	token, err := s.authService.Login(r.Context(), userdomain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		// Unknown email and wrong password answer identically so the
		// response cannot be used to enumerate accounts.
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			writeErrors(w, http.StatusBadRequest, "Invalid Credentials")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	u, err := s.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error("current user lookup failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, u)
}
