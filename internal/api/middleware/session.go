package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/service"
)

type contextKey string

const callerKey contextKey = "caller"

// SessionCookie carries the signed caller token.
const SessionCookie = "kc_session"

// Session decodes the caller from the session cookie, minting a fresh
// anonymous identity when the cookie is missing or invalid, and injects the
// Caller into the request context.
func Session(sessions *service.SessionService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var caller domain.Caller
			fresh := true

			if cookie, err := r.Cookie(SessionCookie); err == nil {
				if c, err := sessions.ValidateToken(cookie.Value); err == nil {
					caller = c
					fresh = false
				} else {
					log.Debug("invalid session cookie, reissuing", "error", err)
				}
			}

			if fresh {
				caller = sessions.NewAnonymousCaller()
				if err := SetSessionCookie(w, sessions, caller); err != nil {
					log.Error("failed to issue session cookie", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly rejects requests whose session does not carry the admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := GetCaller(r.Context())
		if !ok || !caller.IsAdmin() {
			http.Error(w, "Admin session required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetCaller returns the session caller injected by Session.
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}

// SetSessionCookie reissues the session cookie for an updated caller, e.g.
// after registering a player or logging in as admin.
func SetSessionCookie(w http.ResponseWriter, sessions *service.SessionService, caller domain.Caller) error {
	token, err := sessions.IssueToken(caller)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
