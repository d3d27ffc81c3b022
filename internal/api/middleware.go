package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/wordcards/internal/controller"
	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.size += n
	return n, err
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

type controllerKey struct{}

func controllerFromContext(ctx context.Context) *controller.Controller {
	c, _ := ctx.Value(controllerKey{}).(*controller.Controller)
	return c
}

// clientMiddleware resolves the browser's client cookie to its controller,
// issuing a new client id when the cookie is missing or forged.
func (s *Server) clientMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		clientID, refresh := s.Cookies.Identify(r)
		if refresh {
			if err := s.Cookies.Set(w, clientID); err != nil {
				log.Error("failed to sign client cookie: %v", err)
				handleError(w, r, apperrors.NewInternalError(err))
				return
			}
		}

		log = log.WithField("client", shortClientID(clientID))
		ctx := logger.NewContext(r.Context(), log)
		ctrl := s.Registry.Get(ctx, clientID)
		if refresh {
			ctrl.KeepSessionAlive(ctx)
		}
		ctx = context.WithValue(ctx, controllerKey{}, ctrl)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession keeps signed-out clients on the auth page.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctrl := controllerFromContext(r.Context())
		if ctrl != nil && ctrl.SignedIn() {
			next.ServeHTTP(w, r)
			return
		}
		if isAPIRequest(r) {
			handleError(w, r, apperrors.NewUnauthorizedError("Sign in first"))
			return
		}
		logger.FromContext(r.Context()).Debug("no session, redirecting to /auth")
		redirect(w, r, "/auth")
	})
}

// requireAdmin rejects non-administrators.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctrl := controllerFromContext(r.Context())
		if ctrl == nil || !ctrl.Snapshot().IsAdmin() {
			handleError(w, r, apperrors.NewForbiddenError("Only administrators can do this"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func shortClientID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

// loggingMiddleware puts a request-scoped logger in the context and logs
// one line per finished request, at a level chosen by the status.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID(r)
		log := logger.Default().WithFields(map[string]any{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logger.NewContext(r.Context(), log)))

		log = log.WithFields(map[string]any{
			"status":      rec.status,
			"size":        rec.size,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case rec.status >= http.StatusInternalServerError:
			log.Error("%s %s failed", r.Method, r.URL.Path)
		case rec.status >= http.StatusBadRequest:
			log.Warn("%s %s rejected", r.Method, r.URL.Path)
		default:
			log.Info("%s %s", r.Method, r.URL.Path)
		}
	})
}

// recoveryMiddleware turns a handler panic into a 500.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.FromContext(r.Context()).
				WithField("stack", string(debug.Stack())).
				Error("panic: %v", rec)
			handleError(w, r, apperrors.NewInternalError(fmt.Errorf("panic: %v", rec)))
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware sets headers for pages that carry per-client
// state and must never be framed or cached.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}
