// Package server exposes the dispatcher over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/atomicstack/widget-remote/internal/dispatcher"
	"github.com/atomicstack/widget-remote/internal/logging"
	"github.com/atomicstack/widget-remote/internal/logging/events"
	"github.com/atomicstack/widget-remote/internal/widget"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/sjson"
)

// APIVersion prefixes every widget route.
const APIVersion = "v1"

// Executor runs requests against the host; *command.Bus implements it.
type Executor interface {
	Execute(dispatcher.Request) (string, dispatcher.Result)
	Describe(widget.Criteria) (string, dispatcher.Result)
}

type Server struct {
	exec    Executor
	version string
	log     zerolog.Logger
}

func New(exec Executor, version string) *Server {
	return &Server{exec: exec, version: version, log: logging.Logger("server")}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /"+APIVersion+"/widgets", s.handleAction)
	mux.HandleFunc("GET /"+APIVersion+"/widgets", s.handleDescribe)
	mux.HandleFunc("GET /version", s.handleVersion)
	return s.withTracing(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("serving")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeResult(w, "", badRequest(err))
		return
	}
	req := dispatcher.Request{
		Criteria: criteria(r.Form),
		Action:   optional(r.Form, "action"),
		Params: dispatcher.Params{
			Value:  r.Form.Get("value"),
			Column: dispatcher.Atoi(r.Form.Get("column")),
		},
	}
	id, res := s.exec.Execute(req)
	s.writeResult(w, id, res)
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	id, res := s.exec.Describe(criteria(r.URL.Query()))
	s.writeResult(w, id, res)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	body, _ := sjson.Set("", "api_version", APIVersion)
	body, _ = sjson.Set(body, "version", s.version)
	s.writeResult(w, "", dispatcher.Result{Status: dispatcher.StatusOK, Body: body + "\n"})
}

func (s *Server) writeResult(w http.ResponseWriter, id string, res dispatcher.Result) {
	w.Header().Set("Content-Type", dispatcher.ContentType)
	if id != "" {
		w.Header().Set("X-Command-Id", id)
	}
	w.WriteHeader(int(res.Status))
	if _, err := io.WriteString(w, res.Body); err != nil {
		s.log.Debug().Err(err).Msg("write response")
	}
}

// badRequest reports malformed form bodies. The dispatcher itself only ever
// answers 200 or 404.
func badRequest(err error) dispatcher.Result {
	body, _ := sjson.Set("", "error", err.Error())
	return dispatcher.Result{Status: http.StatusBadRequest, Body: body + "\n", Err: err}
}

func criteria(values url.Values) widget.Criteria {
	return widget.Criteria{
		Label: optional(values, "label"),
		ID:    optional(values, "id"),
		Type:  optional(values, "type"),
	}
}

// optional distinguishes an absent parameter from an empty one.
func optional(values url.Values, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
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

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (s *Server) withTracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		events.Request.Received(id, r.Method, r.URL.Path, r.URL.RawQuery)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		events.Request.Completed(id, rec.status, rec.bytes)
		s.log.Debug().Str("id", id).Str("method", r.Method).Str("path", r.URL.Path).Int("status", rec.status).Msg("request")
	})
}
