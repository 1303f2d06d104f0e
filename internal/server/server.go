// Package server exposes the pricer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/contactkeval/option-mc/internal/engine"
	"github.com/contactkeval/option-mc/internal/logger"
	"github.com/contactkeval/option-mc/internal/pricing"
	"github.com/contactkeval/option-mc/internal/report"
)

type Options struct {
	MaxWork   int64 // upper bound on M*I per request
	Workers   int
	BlockSize int
}

// PriceRequest is the body of POST /price. Omitted market fields take
// their default values; seed 0 seeds the run from entropy.
type PriceRequest struct {
	pricing.MarketParameters
	Seed uint64 `json:"seed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	opts   Options
	router *mux.Router
}

func New(opts Options) *Server {
	s := &Server{opts: opts, router: mux.NewRouter()}
	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/price", s.handlePrice).Methods(http.MethodPost)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("starting REST server on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Infof("shutting down REST server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	req := PriceRequest{MarketParameters: pricing.DefaultParameters()}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	p := req.MarketParameters
	if err := pricing.CheckRunnable(p); err != nil {
		sendError(w, http.StatusBadRequest, err)
		return
	}
	if exceedsWork(p.M, p.I, s.opts.MaxWork) {
		sendError(w, http.StatusRequestEntityTooLarge,
			fmt.Errorf("m*i = %d*%d exceeds the limit of %d", p.M, p.I, s.opts.MaxWork))
		return
	}

	eng := engine.NewEngine(engine.Options{
		Seed:      req.Seed,
		Workers:   s.opts.Workers,
		BlockSize: s.opts.BlockSize,
	})
	res, err := eng.Run(r.Context(), p)
	switch {
	case errors.Is(err, pricing.ErrInvalidParameter):
		sendError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		logger.Errorf("price request failed: %v", err)
		sendError(w, http.StatusInternalServerError, err)
		return
	}

	sendJSON(w, http.StatusOK, report.NewSummary(res))
}

// exceedsWork reports whether m*i > limit without forming the product,
// which can overflow for request-supplied sizes.
func exceedsWork(m, i int, limit int64) bool {
	if m <= 0 || i <= 0 {
		return false
	}
	return int64(m) > limit/int64(i)
}

func sendJSON(w http.ResponseWriter, status int, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("write response: %v", err)
	}
}

func sendError(w http.ResponseWriter, status int, err error) {
	sendJSON(w, status, errorResponse{Error: err.Error()})
}
