package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/somnath11som/webeF/internal/visitor"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	workspaceKey
)

// VisitorCookie names the cookie holding the anonymous visitor id.
const VisitorCookie = "visitor_id"

const visitorCookieMaxAge = 365 * 24 * time.Hour

// WorkspaceSource hands out the per-visitor cart and session.
type WorkspaceSource interface {
	Get(ctx context.Context, id string) *visitor.Workspace
}

// VisitorMiddleware identifies the browser by its visitor cookie, issuing a
// new id when the cookie is missing or malformed, and puts the visitor's
// workspace on the request context.
func VisitorMiddleware(visitors WorkspaceSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(VisitorCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ws := visitors.Get(r.Context(), id)
			ctx := context.WithValue(r.Context(), workspaceKey, ws)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getWorkspace(ctx context.Context) *visitor.Workspace {
	if ws, ok := ctx.Value(workspaceKey).(*visitor.Workspace); ok {
		return ws
	}
	return nil
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// withWorkspace is used by handlers that need the visitor; it answers 401
// when the visitor middleware did not run.
func withWorkspace(w http.ResponseWriter, r *http.Request) (*visitor.Workspace, bool) {
	ws := getWorkspace(r.Context())
	if ws == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing visitor identity")
		return nil, false
	}
	return ws, true
}
