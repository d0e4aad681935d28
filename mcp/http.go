package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ka2n/llamadocs/api"
	"github.com/ka2n/llamadocs/log"
	"github.com/morikuni/failure/v2"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAddr is the HTTP listen address when none is configured
	DefaultAddr = ":8000"

	maxBodyBytes      = 1 << 20
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// NewHandler returns the HTTP surface of d: status routes and the JSON-RPC endpoint
func NewHandler(d *Dispatcher) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger())

	r.MethodNotAllowed(handleMethodNotAllowed)
	r.NotFound(handleNotFound)

	r.Get("/", handleRoot)
	r.Get("/rpc", handleHealth)
	r.Post("/rpc", rpcHandler(d))

	return r
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "MCP Server is running",
		"version": api.Version,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"method": "GET /rpc healthcheck",
	})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method Not Allowed"})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
}

func rpcHandler(d *Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				err = failure.Wrap(err, failure.WithCode(ErrInvalidRequest),
					failure.Message(fmt.Sprintf("Invalid Request: request body too large (limit %d bytes)", tooLarge.Limit)))
			} else {
				err = failure.Wrap(err, failure.WithCode(ErrParse), failure.Message("Parse error: Invalid JSON"))
			}
			log.Warn("Rejected unreadable RPC request", log.Err(err))
			writeJSON(w, http.StatusBadRequest, NewError(nil, err))
			return
		}
		log.Debug("RPC request body", "body", string(body))

		req, err := DecodeRequest(body)
		if err != nil {
			var id json.RawMessage
			if req != nil {
				id = req.ID
			}
			log.Warn("Rejected malformed RPC request", log.Err(err))
			writeJSON(w, http.StatusBadRequest, NewError(id, err))
			return
		}

		resp := d.Handle(r.Context(), req)
		writeJSON(w, statusOf(resp), resp)
	}
}

// statusOf maps a dispatcher response to an HTTP status.
// Semantic errors are answered with 200; only internal failures surface as 500.
func statusOf(resp *Response) int {
	if resp.Error != nil && resp.Error.Code == CodeInternalError {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", log.Err(err))
	}
}

// requestLogger logs every request with a level derived from the response status
func requestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				level := slog.LevelInfo
				if status >= 500 {
					level = slog.LevelError
				} else if status >= 400 {
					level = slog.LevelWarn
				}

				log.Logger.Log(r.Context(), level, "HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"duration_ms", time.Since(start).Milliseconds(),
					"bytes", ww.BytesWritten(),
					"request_id", chimw.GetReqID(r.Context()),
					"remote_addr", r.RemoteAddr,
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// ListenAndServe serves h on addr until ctx is canceled
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return failure.Wrap(err, failure.Message("Failed to listen on "+addr),
			failure.Context{"addr": addr})
	}
	return Serve(ctx, ln, h)
}

// Serve serves h on ln until ctx is canceled, then shuts down gracefully
func Serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info("Serving HTTP", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return failure.Wrap(err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
