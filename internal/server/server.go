// Package server exposes the reading pipeline over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arcanaland/diviner/internal/catalog"
	"github.com/arcanaland/diviner/internal/config"
	"github.com/arcanaland/diviner/internal/deck"
	"github.com/arcanaland/diviner/internal/interpret"
	"github.com/arcanaland/diviner/internal/reading"
	"github.com/arcanaland/diviner/internal/spread"
	"github.com/arcanaland/diviner/internal/writer"
)

//go:embed templates/*.html
var templateFS embed.FS

// Board cell geometry for the spread layout, in CSS pixels.
const (
	cardWidth  = 140
	cardHeight = 240
	gap        = 24
	stepX      = cardWidth + gap
	stepY      = cardHeight + gap
)

// Server wires the catalog, interpreter and writer behind HTTP routes.
type Server struct {
	cfg       *config.Config
	cat       *catalog.Catalog
	interp    interpret.Interpreter
	writer    *writer.Writer
	logger    *slog.Logger
	templates *template.Template
}

// New creates a Server. interp may be nil when interpretation is not
// configured.
func New(cfg *config.Config, cat *catalog.Catalog, interp interpret.Interpreter, w *writer.Writer, logger *slog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{
		cfg:       cfg,
		cat:       cat,
		interp:    interp,
		writer:    w,
		logger:    logger,
		templates: tmpl,
	}, nil
}

// Router builds the chi router with standard middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/spread/{name}", s.handleSpreadPage)
	r.Get("/api/spread/{name}", s.handleSpreadJSON)
	r.Get("/cards/{filename}", s.handleCardImage)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "port", s.cfg.Port)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// drawOptions parses the shared query parameters for the spread routes.
func (s *Server) drawOptions(r *http.Request) (reading.Options, bool, error) {
	opts := reading.Options{
		ReversalProb:  s.cfg.ReversalProb,
		AllowReversed: r.URL.Query().Get("reversed") != "0",
	}

	if raw := r.URL.Query().Get("reversal_prob"); raw != "" {
		prob, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, false, fmt.Errorf("%w: reversal_prob %q is not a number", deck.ErrInvalidDraw, raw)
		}
		opts.ReversalProb = prob
	}

	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return opts, false, fmt.Errorf("%w: seed %q is not an integer", deck.ErrInvalidDraw, raw)
		}
		opts.Seed = &seed
	}

	interpretWanted := r.URL.Query().Get("interpret") != "0"
	return opts, interpretWanted, nil
}

// buildReading runs the full pipeline: assemble, annotate (best effort) and
// save (best effort).
func (s *Server) buildReading(ctx context.Context, name string, opts reading.Options, interpretWanted bool) (*reading.Reading, error) {
	rd, err := reading.Assemble(s.cat, name, opts)
	if err != nil {
		return nil, err
	}

	title := ""
	if interpretWanted && s.interp != nil {
		interpCtx, cancel := context.WithTimeout(ctx, s.cfg.InterpretTimeout)
		defer cancel()
		interpret.Annotate(interpCtx, s.interp, rd, s.logger)
		if t, err := s.interp.Title(interpCtx, rd); err == nil {
			title = t
		}
	}

	if path, err := s.writer.Save(rd, title); err != nil {
		s.logger.Warn("failed to save reading", "error", err)
	} else if path != "" {
		s.logger.Info("reading saved", "path", path)
	}

	return rd, nil
}

func (s *Server) handleSpreadPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	opts, interpretWanted, err := s.drawOptions(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	rd, err := s.buildReading(r.Context(), name, opts, interpretWanted)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "reading.html", newReadingView(rd)); err != nil {
		s.logger.Error("failed to render reading page", "error", err)
	}
}

func (s *Server) handleSpreadJSON(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	opts, interpretWanted, err := s.drawOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rd, err := s.buildReading(r.Context(), name, opts, interpretWanted)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondWithJSON(w, s.logger, http.StatusOK, newReadingPayload(rd))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	type spreadInfo struct {
		Key  string
		Name string
		Size int
	}
	var spreads []spreadInfo
	for _, key := range spread.Keys() {
		def, err := spread.Get(key)
		if err != nil {
			continue
		}
		spreads = append(spreads, spreadInfo{Key: def.Key, Name: def.Name, Size: def.Size()})
	}

	data := struct {
		DeckName string
		Spreads  []spreadInfo
	}{DeckName: s.cat.DeckName, Spreads: spreads}

	if err := s.templates.ExecuteTemplate(w, "home.html", data); err != nil {
		s.logger.Error("failed to render home page", "error", err)
	}
}

func (s *Server) handleCardImage(w http.ResponseWriter, r *http.Request) {
	if s.cfg.CardsDir == "" {
		http.NotFound(w, r)
		return
	}
	// Base strips any path separators a crafted URL could smuggle in.
	filename := filepath.Base(chi.URLParam(r, "filename"))
	http.ServeFile(w, r, filepath.Join(s.cfg.CardsDir, filename))
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.logger.Debug("request failed", "path", r.URL.Path, "status", status, "error", err)
	http.Error(w, err.Error(), status)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.logger.Debug("request failed", "path", r.URL.Path, "status", status, "error", err)
	respondWithJSON(w, s.logger, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, spread.ErrUnknownSpread):
		return http.StatusNotFound
	case errors.Is(err, deck.ErrInvalidDraw):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
