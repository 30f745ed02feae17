package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
	"github.com/secmon-lab/tubeqa/pkg/usecase"
	"github.com/secmon-lab/tubeqa/pkg/utils/errutil"
	"github.com/secmon-lab/tubeqa/pkg/utils/safe"
)

// Server exposes the session surface over HTTP: create a session, ingest a
// video, read the summary, ask questions, and export the conversation.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("usecases are required")
	}

	s := &Server{
		router: chi.NewRouter(),
		uc:     uc,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(accessLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", s.closeSession)
			r.Post("/videos", s.ingestVideo)
			r.Get("/summary", s.getSummary)
			r.Post("/questions", s.askQuestion)
			r.Get("/export", s.exportConversation)
		})
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// statusFromError maps orchestration errors to HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidVideoURL):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrVideoAlreadyIngested),
		errors.Is(err, usecase.ErrNoVideoIngested):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrIndexingFailed),
		errors.Is(err, usecase.ErrSummaryFailed),
		errors.Is(err, usecase.ErrAnswerFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func sessionID(r *http.Request) types.SessionID {
	return types.SessionID(chi.URLParam(r, "sessionID"))
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.uc.CreateSession(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"session_id": state.ID.String(),
	})
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.CloseSession(r.Context(), sessionID(r)); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ingestVideo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	result, err := s.uc.IngestVideo(r.Context(), sessionID(r), req.URL)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"video_id": result.Video.ID.String(),
		"outcome":  string(result.Outcome),
	})
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.uc.Summary(r.Context(), sessionID(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"summary": summary,
	})
}

func (s *Server) askQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	exchange, err := s.uc.Ask(r.Context(), sessionID(r), req.Query)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
		return
	}
	if exchange == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("query is required"), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"answer": exchange.Response,
		"index":  exchange.Index,
	})
}

func (s *Server) exportConversation(w http.ResponseWriter, r *http.Request) {
	artifact, err := s.uc.Export(sessionID(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
		return
	}
	if artifact == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", artifact.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, artifact.Body)
}
