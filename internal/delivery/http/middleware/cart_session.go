package middleware

import (
	"context"
	"net/http"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/pkg/logger"
	"futur-backend/pkg/utils"
)

// SessionIDFromContext returns the cart session attached by CartSession.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(domain.SessionContextKey).(string)
	return id
}

// WithSessionID attaches a cart session to ctx.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, domain.SessionContextKey, sessionID)
}

// NewCartSessionMiddleware resolves the caller's cart session from the
// X-Cart-Session header or cookie. Callers without a valid token get a fresh
// session; the signed token is returned in both the header and the cookie.
func NewCartSessionMiddleware(ttl time.Duration, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := utils.ExtractSessionID(r)
			if err != nil {
				sessionID = utils.GenerateUUID()
				token, err := utils.GenerateSessionToken(sessionID, ttl)
				if err != nil {
					logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to issue cart session")
					utils.WriteError(w, http.StatusInternalServerError, "Failed to start cart session")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     utils.SessionCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
				w.Header().Set(utils.SessionHeader, token)
			}

			reqLogger := logger.WithSessionID(*logger.WithContext(r.Context()), sessionID)
			ctx := logger.NewContext(WithSessionID(r.Context(), sessionID), &reqLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
