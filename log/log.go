package log

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/morikuni/failure/v2"
	"github.com/motemen/go-loghttp"
)

// EnvDebug enables debug logging, including every outbound HTTP exchange
const EnvDebug = "LLAMADOCS_DEBUG"

// Logger is the global logger instance
var Logger *slog.Logger

// InitLogger initializes the global logger
// It sets the log level to Debug if LLAMADOCS_DEBUG is set
func InitLogger() {
	opts := &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelInfo,
	}

	if os.Getenv(EnvDebug) != "" {
		opts.Level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// init initializes the logger when the package is imported
func init() {
	InitLogger()
}

// Transport wraps base so that requests and responses are logged at debug level.
// A nil base means http.DefaultTransport.
func Transport(base http.RoundTripper) http.RoundTripper {
	return &loghttp.Transport{
		Transport: base,
		LogRequest: func(req *http.Request) {
			Debug("HTTP request",
				"method", req.Method,
				"url", req.URL.String(),
			)
		},
		LogResponse: func(resp *http.Response) {
			Debug("HTTP response",
				"method", resp.Request.Method,
				"url", resp.Request.URL.String(),
				"status", resp.Status,
				"status_code", resp.StatusCode,
				"content_type", resp.Header.Get("Content-Type"),
			)
		},
	}
}

// Err describes err as an "error" group holding its message and failure code.
// The full error, call stack included, is only added when debug logging is on.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	msg := err.Error()
	if m := failure.MessageOf(err); m != "" {
		msg = m.String()
	}
	attrs := []any{slog.String("message", msg)}
	if code := failure.CodeOf(err); code != nil {
		attrs = append(attrs, slog.String("code", fmt.Sprint(code)))
	}
	if Logger.Enabled(context.Background(), slog.LevelDebug) {
		attrs = append(attrs, slog.String("detail", fmt.Sprintf("%+v", err)))
	}
	return slog.Group("error", attrs...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
