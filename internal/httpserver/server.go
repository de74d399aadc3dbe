package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"devconnector/backend/internal/config"
	authusecase "devconnector/backend/internal/usecase/auth"
	postusecase "devconnector/backend/internal/usecase/post"
	profileusecase "devconnector/backend/internal/usecase/profile"
	"devconnector/backend/web"

	"github.com/go-chi/chi/v5"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer     *http.Server
	router         chi.Router
	logger         *slog.Logger
	tokens         authusecase.TokenManager
	authService    *authusecase.Service
	profileService *profileusecase.Service
	postService    *postusecase.Service
	addr           string
}

// NewServer constructs a new Server with configured dependencies. The token
// manager is injected directly because the auth gate verifies tokens without
// touching storage.
func NewServer(
	cfg config.Config,
	logger *slog.Logger,
	tokens authusecase.TokenManager,
	authService *authusecase.Service,
	profileService *profileusecase.Service,
	postService *postusecase.Service,
) *Server {
	router := chi.NewRouter()
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	srv := &Server{
		router:         router,
		logger:         logger,
		tokens:         tokens,
		authService:    authService,
		profileService: profileService,
		postService:    postService,
		addr:           addr,
	}

	handler := srv.withLogging(withCORS(router, cfg.AllowedOrigins))
	srv.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Post("/api/users", s.handleRegister)

	s.router.Route("/api/auth", func(r chi.Router) {
		r.Post("/", s.handleLogin)
		r.With(s.authMiddleware).Get("/", s.handleCurrentUser)
	})

	s.router.Route("/api/profile", func(r chi.Router) {
		r.Get("/", s.handleListProfiles)
		r.Get("/user/{user_id}", s.handleProfileByUserID)
		r.Get("/github/{username}", s.handleGithubRepos)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/me", s.handleMyProfile)
			r.Post("/", s.handleUpsertProfile)
			r.Delete("/", s.handleDeleteAccount)
			r.Put("/experience", s.handleAddExperience)
			r.Delete("/experience/{exp_id}", s.handleRemoveExperience)
			r.Put("/education", s.handleAddEducation)
			r.Delete("/education/{edu_id}", s.handleRemoveEducation)
		})
	})

	s.router.Route("/api/posts", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/", s.handleCreatePost)
		r.Get("/", s.handleListPosts)
		r.Get("/{id}", s.handlePostByID)
		r.Delete("/{id}", s.handleDeletePost)
		r.Put("/like/{id}", s.handleLikePost)
		r.Put("/unlike/{id}", s.handleUnlikePost)
		r.Post("/comment/{id}", s.handleAddComment)
		r.Delete("/comment/{id}/{comment_id}", s.handleRemoveComment)
	})

	s.router.Handle("/*", web.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying handler, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
