// Package http exposes the user administration REST API. Success responses
// carry the resource JSON directly; failures carry {"error": "message"} with
// a matching status code, which is what the client gateway expects.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avolkovx/userdesk/internal/common"
	"github.com/avolkovx/userdesk/internal/logging"
	"github.com/avolkovx/userdesk/internal/model"
	"github.com/avolkovx/userdesk/internal/server/auth"
	"github.com/avolkovx/userdesk/internal/server/config"
	"github.com/avolkovx/userdesk/internal/server/crypto"
	"github.com/avolkovx/userdesk/internal/server/models"
	"github.com/avolkovx/userdesk/internal/server/repositories/users"
	"github.com/avolkovx/userdesk/internal/validation"
)

const defaultPageSize = 10

type Server struct {
	cfg    *config.Config
	repo   users.Repository
	logger logging.Logger
}

func NewServer(cfg *config.Config, repo users.Repository, logger logging.Logger) *Server {
	return &Server{cfg: cfg, repo: repo, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/auth", s.handleLogin)

	r.Route("/api/users", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleCreateUser)
		r.Put("/{userID}", s.handleUpdateUser)
		r.Delete("/{userID}", s.handleDeleteUser)
	})

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.cfg.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.repo.GetByEmail(r.Context(), creds.Email)
	if err != nil || !crypto.CheckPassword(user.PasswordHash, creds.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.cfg.SecretKey), s.cfg.TokenTTL)
	if err != nil {
		s.logger.Error(r.Context(), "token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResult{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Token:     token,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if page < 1 {
		page = 1
	}

	records, total, err := s.repo.List(r.Context(), (page-1)*limit, limit)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	// A page past the end clamps to the last page. Happens after deleting
	// the only record of the last page.
	totalPages := model.PageCount(total, limit)
	if page > totalPages {
		page = totalPages
		records, total, err = s.repo.List(r.Context(), (page-1)*limit, limit)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	wire := make([]model.User, 0, len(records))
	for _, u := range records {
		wire = append(wire, toWire(u))
	}

	writeJSON(w, http.StatusOK, model.UserPage{
		Users: wire,
		Pagination: model.PaginationInfo{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalUsers:  total,
			PageSize:    limit,
		},
	})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var form model.UserForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.UserForm(form, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := crypto.HashPassword(form.Password)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	created, err := s.repo.Create(r.Context(), &models.User{
		FirstName:    form.FirstName,
		MiddleName:   form.MiddleName,
		LastName:     form.LastName,
		Email:        form.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "Email already in use")
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWire(created))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	var form model.UserForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.UserForm(form, true); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	current, err := s.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.serverError(w, r, err)
		return
	}

	// A blank password keeps the stored hash.
	hash := current.PasswordHash
	if form.Password != "" {
		hash, err = crypto.HashPassword(form.Password)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
	}

	updated, err := s.repo.Update(r.Context(), &models.User{
		ID:           id,
		FirstName:    form.FirstName,
		MiddleName:   form.MiddleName,
		LastName:     form.LastName,
		Email:        form.Email,
		PasswordHash: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, common.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "Email already in use")
		default:
			s.serverError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toWire(updated))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	if err := s.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.serverError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Authorization required")
			return
		}

		if _, err := auth.GetUserIDFromToken(token, []byte(s.cfg.SecretKey)); err != nil {
			writeError(w, http.StatusUnauthorized, "Session expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "Something went wrong")
}

func toWire(u *models.User) model.User {
	return model.User{
		ID:         u.ID,
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		LastName:   u.LastName,
		Email:      u.Email,
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
