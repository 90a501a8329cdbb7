package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"alpaca-gateway/registry"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Options configures a Server.
type Options struct {
	// Strict enables request validation, see Validator.
	Strict bool
	// Authorizer gates every request. Nil allows everything.
	Authorizer  Authorizer
	Description Description
	// HTTPLog logs every request at Info.
	HTTPLog bool
	Logger  *zap.Logger
}

// Server is the ASCOM Alpaca HTTP API server. It owns the transaction
// counter and serves the devices of one registry.
type Server struct {
	devices     *registry.Registry
	txn         Transactions
	validator   *Validator
	auth        Authorizer
	description Description
	httpLog     bool
	logger      *zap.Logger
	handler     http.Handler
}

// New builds a Server serving devices.
func New(devices *registry.Registry, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("server")
	auth := opts.Authorizer
	if auth == nil {
		auth = AllowAll{}
	}
	s := &Server{
		devices:     devices,
		validator:   NewValidator(opts.Strict, logger),
		auth:        auth,
		description: opts.Description,
		httpLog:     opts.HTTPLog,
		logger:      logger,
	}

	r := httprouter.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.HandleMethodNotAllowed = false
	r.NotFound = http.HandlerFunc(s.handleNotFound)
	r.PanicHandler = s.handlePanic
	s.mountManagement(r)
	s.configureSetupAPI(r)
	s.configureDeviceAPI(r)

	s.handler = s.withValidation(r)
	s.handler = s.withAuth(s.handler)
	if s.httpLog {
		s.handler = s.withHTTPLog(s.handler)
	}
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on addr (e.g. ":11111") until ctx is cancelled, then
// shuts down, giving in-flight requests five seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Alpaca API server listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) withValidation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f := s.validator.Check(r); f != nil {
			sendFault(w, f)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.auth.Authorized(r) {
			s.logger.Warn("unauthorized request", zap.String("remote", r.RemoteAddr), zap.String("path", r.URL.Path))
			if c, ok := s.auth.(Challenger); ok {
				w.Header().Set("WWW-Authenticate", c.Challenge())
			}
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) withHTTPLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.logger.Info("http",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

// handleNotFound answers unmatched API paths with 400, as Alpaca clients
// expect, and everything else with 404.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, apiPrefix) {
		s.logger.Warn("unknown API route", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		sendFault(w, badRequest("%s %s is not a valid Alpaca API route", r.Method, r.URL.Path))
		return
	}
	http.NotFound(w, r)
}

func (s *Server) handlePanic(w http.ResponseWriter, r *http.Request, p any) {
	s.logger.Error("panic serving request", zap.String("path", r.URL.Path), zap.Any("panic", p), zap.Stack("stack"))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// sendJSON encodes v before touching w, so a value that cannot be encoded
// still leaves the response writable.
func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warn("writing response failed", zap.Error(err))
	}
	return nil
}

func sendFault(w http.ResponseWriter, f *Fault) {
	http.Error(w, f.Message, f.Status)
}
