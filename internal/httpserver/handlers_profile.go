package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	profiledomain "devconnector/backend/internal/domain/profile"
	profileusecase "devconnector/backend/internal/usecase/profile"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

// flexDate decodes both RFC 3339 timestamps and bare YYYY-MM-DD dates, the
// two forms clients submit for experience and education entries.
type flexDate struct {
	time.Time
}

var flexDateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02T15:04:05"}

func (d *flexDate) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	for _, layout := range flexDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", raw)
}

func (d *flexDate) timePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func requiredDate(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		d, _ := value.(flexDate)
		if d.IsZero() {
			return errors.New(msg)
		}
		return nil
	}
}

type upsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

func (r upsertProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("Status is required")),
		validation.Field(&r.Skills,
			validation.Required.Error("Skills is required")),
	)
}

type experienceRequest struct {
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	From        flexDate  `json:"from"`
	To          *flexDate `json:"to"`
	Current     bool      `json:"current"`
	Description string    `json:"description"`
}

func (r experienceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Title is required")),
		validation.Field(&r.Company,
			validation.Required.Error("Company is required")),
		validation.Field(&r.From,
			validation.By(requiredDate("From date is required"))),
	)
}

type educationRequest struct {
	School       string    `json:"school"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"fieldofstudy"`
	From         flexDate  `json:"from"`
	To           *flexDate `json:"to"`
	Current      bool      `json:"current"`
	Description  string    `json:"description"`
}

func (r educationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.School,
			validation.Required.Error("School is required")),
		validation.Field(&r.Degree,
			validation.Required.Error("Degree is required")),
		validation.Field(&r.FieldOfStudy,
			validation.Required.Error("Field of study is required")),
		validation.Field(&r.From,
			validation.By(requiredDate("From date is required"))),
	)
}

func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	p, err := s.profileService.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profiledomain.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		s.logger.Error("profile lookup failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var payload upsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !checkValid(w, payload) {
		return
	}

	p, err := s.profileService.Upsert(r.Context(), userID, profileusecase.UpsertInput{
		Company:        payload.Company,
		Website:        payload.Website,
		Location:       payload.Location,
		Bio:            payload.Bio,
		Status:         payload.Status,
		GithubUsername: payload.GithubUsername,
		Skills:         payload.Skills,
		Youtube:        payload.Youtube,
		Twitter:        payload.Twitter,
		Facebook:       payload.Facebook,
		Linkedin:       payload.Linkedin,
		Instagram:      payload.Instagram,
	})
	if err != nil {
		s.logger.Error("profile upsert failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profileService.List(r.Context())
	if err != nil {
		s.logger.Error("profile list failed", "error", err)
		writeServerError(w)
		return
	}
	if profiles == nil {
		profiles = []*profiledomain.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleProfileByUserID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	p, err := s.profileService.GetByUserID(r.Context(), userID)
	if err != nil {
		// A malformed id and a missing profile answer identically.
		if errors.Is(err, profiledomain.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "Profile not found")
			return
		}
		s.logger.Error("profile lookup failed", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	if err := s.profileService.DeleteAccount(r.Context(), userID); err != nil {
		s.logger.Error("account deletion failed", "error", err)
		writeServerError(w)
		return
	}

	writeMsg(w, http.StatusOK, "User removed")
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var payload experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !checkValid(w, payload) {
		return
	}

	p, err := s.profileService.AddExperience(r.Context(), userID, profileusecase.ExperienceInput{
		Title:       payload.Title,
		Company:     payload.Company,
		Location:    payload.Location,
		From:        payload.From.Time,
		To:          payload.To.timePtr(),
		Current:     payload.Current,
		Description: payload.Description,
	})
	if err != nil {
		s.writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	expID := chi.URLParam(r, "exp_id")

	p, err := s.profileService.RemoveExperience(r.Context(), userID, expID)
	if err != nil {
		if errors.Is(err, profiledomain.ErrExperienceNotFound) {
			writeMsg(w, http.StatusNotFound, "Experience not found")
			return
		}
		s.writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var payload educationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !checkValid(w, payload) {
		return
	}

	p, err := s.profileService.AddEducation(r.Context(), userID, profileusecase.EducationInput{
		School:       payload.School,
		Degree:       payload.Degree,
		FieldOfStudy: payload.FieldOfStudy,
		From:         payload.From.Time,
		To:           payload.To.timePtr(),
		Current:      payload.Current,
		Description:  payload.Description,
	})
	if err != nil {
		s.writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	eduID := chi.URLParam(r, "edu_id")

	p, err := s.profileService.RemoveEducation(r.Context(), userID, eduID)
	if err != nil {
		if errors.Is(err, profiledomain.ErrEducationNotFound) {
			writeMsg(w, http.StatusNotFound, "Education not found")
			return
		}
		s.writeProfileError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGithubRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	repos, err := s.profileService.GithubRepos(r.Context(), username)
	if err != nil {
		if errors.Is(err, profileusecase.ErrNoGithubProfile) {
			writeMsg(w, http.StatusNotFound, "No Github profile found")
			return
		}
		s.logger.Error("github repos lookup failed", "error", err)
		writeServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(repos)
}

func (s *Server) writeProfileError(w http.ResponseWriter, err error) {
	if errors.Is(err, profiledomain.ErrProfileNotFound) {
		writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
		return
	}
	s.logger.Error("profile operation failed", "error", err)
	writeServerError(w)
}
