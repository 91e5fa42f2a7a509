// Package devserver serves the hospital REST API from an in-memory backend,
// for running the live client and the command line tools without a real
// deployment.
package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eshaffer321/hospitalnav-go/internal/types"
	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Options configures a Server
type Options struct {
	// Backend answers every route; defaults to a fresh fixture backend
	Backend hospital.Backend

	Logger hospital.Logger
}

// Server is an http.Handler speaking the envelope protocol
type Server struct {
	backend hospital.Backend
	logger  hospital.Logger
	router  *mux.Router

	mu     sync.RWMutex
	tokens map[string]struct{}
}

// New creates a server
func New(opts *Options) *Server {
	if opts == nil {
		opts = &Options{}
	}

	s := &Server{
		backend: opts.Backend,
		logger:  opts.Logger,
		tokens:  make(map[string]struct{}),
	}
	if s.backend == nil {
		s.backend = hospital.NewFixtureBackend(&hospital.FixtureOptions{Logger: opts.Logger})
	}

	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Routes sit on the root router so method mismatches reach MethodNotAllowedHandler

	r.HandleFunc(types.APIPrefix+"/hospitals", s.searchHospitals).Methods(http.MethodGet)
	r.HandleFunc(types.APIPrefix+"/hospitals/nearby", s.nearbyHospitals).Methods(http.MethodGet)
	r.HandleFunc(types.APIPrefix+"/hospitals/{id}", s.getHospital).Methods(http.MethodGet)
	r.HandleFunc(types.APIPrefix+"/hospitals/{id}/departments", s.departments).Methods(http.MethodGet)
	r.HandleFunc(types.APIPrefix+"/hospital-categories", s.categories).Methods(http.MethodGet)

	r.HandleFunc(types.APIPrefix+"/favorites", s.requireAuth(s.listFavorites)).Methods(http.MethodGet)
	r.HandleFunc(types.APIPrefix+"/favorites/{id}", s.requireAuth(s.addFavorite)).Methods(http.MethodPost)
	r.HandleFunc(types.APIPrefix+"/favorites/{id}", s.requireAuth(s.removeFavorite)).Methods(http.MethodDelete)

	r.HandleFunc(types.APIPrefix+"/rating-dimensions", s.ratingDimensions).Methods(http.MethodGet)
	r.HandleFunc(types.APIPrefix+"/hospitals/{id}/ratings", s.hospitalRatings).Methods(http.MethodGet)
	r.HandleFunc(types.APIPrefix+"/hospitals/{id}/ratings", s.requireAuth(s.submitRating)).Methods(http.MethodPost)
	r.HandleFunc(types.APIPrefix+"/ratings", s.requireAuth(s.myRatings)).Methods(http.MethodGet)

	r.HandleFunc(types.APIPrefix+"/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc(types.APIPrefix+"/auth/profile", s.requireAuth(s.profile)).Methods(http.MethodGet)

	r.HandleFunc(types.APIPrefix+"/assistant/history", s.chatHistory).Methods(http.MethodGet)
	r.HandleFunc(types.APIPrefix+"/assistant/message", s.sendMessage).Methods(http.MethodPost)
	r.HandleFunc(types.APIPrefix+"/assistant/stream", s.streamMessage).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// IssueToken registers a bearer token the server accepts
func (s *Server) IssueToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = struct{}{}
}

// RevokeTokens forgets every issued token, so the next user call gets a 401
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]struct{})
}

func (s *Server) validToken(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

// requireAuth rejects requests without an issued bearer token
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || !s.validToken(token) {
			writeError(w, http.StatusUnauthorized, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.logger == nil {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.logger.Info("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Code: types.CodeSuccess, Message: "success", Data: data})
}

func writeError(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, envelope{Code: code, Message: message})
}

// writeBackendError maps a backend failure onto a status and envelope
func (s *Server) writeBackendError(w http.ResponseWriter, err error) {
	var validationErr *hospital.ValidationError
	var validationErrs hospital.ValidationErrors
	switch {
	case errors.As(err, &validationErr), errors.As(err, &validationErrs):
		writeError(w, http.StatusBadRequest, http.StatusBadRequest, err.Error())
		return
	}

	if reqErr, ok := hospital.AsRequestError(err); ok {
		status := reqErr.Code
		if reqErr.Kind == hospital.KindBusiness || status < 400 || status > 599 {
			status = http.StatusOK
		}
		writeError(w, status, reqErr.Code, reqErr.Message)
		return
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, http.StatusServiceUnavailable, err.Error())
		return
	}

	if s.logger != nil {
		s.logger.Error("Backend call failed", "error", err)
	}
	writeError(w, http.StatusInternalServerError, http.StatusInternalServerError, "Server error")
}

func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return &hospital.ValidationError{Field: "body", Message: "is required"}
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &hospital.ValidationError{Field: "body", Message: "is not valid JSON: " + err.Error()}
	}
	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &hospital.ValidationError{Field: key, Message: "must be an integer", Value: raw}
	}
	return n, nil
}

func queryFloat(r *http.Request, key string) (float64, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, &hospital.ValidationError{Field: key, Message: "must be a number", Value: raw}
	}
	return f, true, nil
}

// queryLocation reads lat/lng; both or neither must be present
func queryLocation(r *http.Request) (*hospital.Location, error) {
	lat, hasLat, err := queryFloat(r, "lat")
	if err != nil {
		return nil, err
	}
	lng, hasLng, err := queryFloat(r, "lng")
	if err != nil {
		return nil, err
	}
	if hasLat != hasLng {
		return nil, &hospital.ValidationError{Field: "lat,lng", Message: "must be given together"}
	}
	if !hasLat {
		return nil, nil
	}
	return &hospital.Location{Latitude: lat, Longitude: lng}, nil
}
