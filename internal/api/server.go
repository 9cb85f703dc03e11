package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"deeptrader/internal/config"
	"deeptrader/internal/game"
	"deeptrader/internal/observability"
	"deeptrader/internal/session"
	"deeptrader/internal/store"
)

const maxBodyBytes = 8 << 20

type Server struct {
	cfg      config.APIConfig
	log      *slog.Logger
	engine   *game.Engine
	store    store.Store
	metrics  *observability.Metrics
	sessions *sessions
	mux      *chi.Mux

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func New(cfg config.APIConfig, logger *slog.Logger, engine *game.Engine, st store.Store, metrics *observability.Metrics) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:     cfg,
		log:     logger,
		engine:  engine,
		store:   st,
		metrics: metrics,
		mux:     chi.NewRouter(),
		ctx:     ctx,
		cancel:  cancel,
	}
	cache, err := newSessions(cfg.SessionCache, logger)
	if err != nil {
		cancel()
		return nil, err
	}
	s.sessions = cache
	s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Close stops every live session; each one writes a final save.
func (s *Server) Close() {
	s.once.Do(func() {
		s.sessions.purge()
		s.cancel()
	})
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/games/{slot}/stream", s.handleStream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			r.Get("/catalog", s.handleCatalog)
			r.Get("/games", s.handleListGames)
			r.Post("/games/{slot}", s.handleNewGame)
			r.Get("/games/{slot}", s.handleState)
			r.Delete("/games/{slot}", s.handleDeleteGame)
			r.Get("/games/{slot}/summary", s.handleSummary)
			r.Post("/games/{slot}/actions", s.handleAction)
			r.Post("/games/{slot}/save", s.handleSave)
		})
	})
}

// authMiddleware checks the shared bearer token. With no token configured
// the API is open.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.APIToken)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"catalog":      s.engine.Catalog(),
		"action_types": game.ActionTypes(),
		"languages":    s.engine.Tuning().UI.Languages,
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	slots, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": slots, "live": s.sessions.slots()})
}

// handleNewGame starts a fresh game in the slot, replacing whatever was there.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	if err := store.ValidateSlot(slot); err != nil {
		writeDomainError(w, err)
		return
	}
	var in struct {
		PlayerName string `json:"player_name"`
		CountryID  string `json:"country_id"`
		Language   string `json:"language"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := s.engine.NewGame(in.PlayerName, in.CountryID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if in.Language != "" {
		if state, err = s.engine.Apply(state, game.SetLanguage{Language: in.Language}); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	// add stops a previous session first, so its final flush lands before ours
	runner := session.New(s.engine, state, s.sessionOptions(slot))
	s.sessions.add(s.ctx, runner)
	if err := runner.Save(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	s.log.Info("game created", "slot", slot, "country", in.CountryID)
	writeJSON(w, http.StatusCreated, runner.Summary())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	runner, ok := s.runner(w, r)
	if !ok {
		return
	}
	raw, err := game.EncodeState(runner.State())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	runner, ok := s.runner(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, runner.Summary())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	runner, ok := s.runner(w, r)
	if !ok {
		return
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	action, err := game.DecodeAction(raw)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	sum, err := runner.Apply(action)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	runner, ok := s.runner(w, r)
	if !ok {
		return
	}
	if err := runner.Save(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "date": runner.State().Date.String()})
}

// handleDeleteGame stops the live session before removing the save so the
// final flush cannot resurrect it.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	if err := store.ValidateSlot(slot); err != nil {
		writeDomainError(w, err)
		return
	}
	s.sessions.remove(slot)
	if err := s.store.Delete(r.Context(), slot); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// runner finds the live session for the slot, loading it from the store on a
// cache miss. It writes the error response itself.
func (s *Server) runner(w http.ResponseWriter, r *http.Request) (*session.Runner, bool) {
	slot := chi.URLParam(r, "slot")
	if err := store.ValidateSlot(slot); err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	runner, err := s.sessions.get(s.ctx, slot, func() (*session.Runner, error) {
		return session.Load(r.Context(), s.engine, s.sessionOptions(slot))
	})
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return runner, true
}

func (s *Server) sessionOptions(slot string) session.Options {
	return session.Options{
		Slot:          slot,
		Store:         s.store,
		Metrics:       s.metrics,
		Logger:        s.log,
		FrameEvery:    s.cfg.FrameEvery,
		AutosaveEvery: s.cfg.AutosaveEvery,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNoSave):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidSlot),
		errors.Is(err, game.ErrInvalidAction),
		errors.Is(err, game.ErrUnknownAction):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrUnknownAsset),
		errors.Is(err, game.ErrUnknownCountry),
		errors.Is(err, game.ErrUnknownParty),
		errors.Is(err, game.ErrUnknownCompany),
		errors.Is(err, game.ErrUnknownPosition),
		errors.Is(err, game.ErrUnknownOrder):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrSimulating),
		errors.Is(err, game.ErrNotStarted),
		errors.Is(err, game.ErrPenaltyPending):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientHoldings),
		errors.Is(err, game.ErrInsufficientPoliticalCapital),
		errors.Is(err, game.ErrTradeBanned),
		errors.Is(err, game.ErrResidencyLocked),
		errors.Is(err, game.ErrAssetCollapsed),
		errors.Is(err, game.ErrNotEligible),
		errors.Is(err, game.ErrLoanLimit):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
