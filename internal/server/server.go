// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeStore is the storage surface the resume handlers depend on.
// *db.DB satisfies it; tests substitute an in-memory double.
type ResumeStore interface {
	CreateResume(ctx context.Context, userID *uuid.UUID, title, status string, data types.ResumeData) (*db.ResumeRecord, error)
	GetResume(ctx context.Context, resumeID uuid.UUID) (*db.ResumeRecord, error)
	UpdateResume(ctx context.Context, resumeID uuid.UUID, status string, data types.ResumeData) (*db.ResumeRecord, error)
	ListResumes(ctx context.Context, filters db.ResumeFilters) ([]db.ResumeRecord, error)
	CountResumes(ctx context.Context, filters db.ResumeFilters) (int, error)
	DeleteResume(ctx context.Context, resumeID uuid.UUID) error
}

// DBClient is the user storage surface the auth services depend on.
type DBClient interface {
	CreateUser(ctx context.Context, name, email string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       ResumeStore
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:    database,
		store: database,
	}

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// apiPrefix fronts every versioned route. Clients configure their base URL
// with the prefix included.
const apiPrefix = "/api/v1"

// routes builds the request multiplexer
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Resume document endpoints
	mux.HandleFunc("POST "+apiPrefix+"/resume/resumes", s.handleCreateResume)
	mux.HandleFunc("POST "+apiPrefix+"/resume/resumes/draft", s.handleCreateDraft)
	mux.HandleFunc("GET "+apiPrefix+"/resume/resumes", s.handleListResumes)
	mux.HandleFunc("GET "+apiPrefix+"/resume/resumes/{id}", s.handleGetResume)
	mux.HandleFunc("PUT "+apiPrefix+"/resume/resumes/{id}", s.handleUpdateResume)
	mux.HandleFunc("DELETE "+apiPrefix+"/resume/resumes/{id}", s.handleDeleteResume)

	// Authentication endpoints
	mux.HandleFunc("POST "+apiPrefix+"/auth/register", s.handleRegister)
	mux.HandleFunc("POST "+apiPrefix+"/auth/login", s.handleLogin)

	// Authenticated profile endpoint
	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("GET "+apiPrefix+"/auth/me", requireAuth(http.HandlerFunc(s.handleMe)))

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// envelopeResponse wraps data in the standard API envelope
func (s *Server) envelopeResponse(w http.ResponseWriter, status int, message string, data any) {
	envelope := types.Envelope{Success: true, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			s.envelopeError(w, http.StatusInternalServerError, "Failed to encode response")
			return
		}
		envelope.Data = raw
	}
	s.jsonResponse(w, status, envelope)
}

// envelopeError writes a failure envelope
func (s *Server) envelopeError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, types.Envelope{Success: false, Message: message})
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleMe returns the authenticated user's profile.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.envelopeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.userService.GetByID(r.Context(), userID)
	if err != nil {
		s.envelopeError(w, HTTPStatus(err), err.Error())
		return
	}

	s.envelopeResponse(w, http.StatusOK, "User retrieved", user)
}
