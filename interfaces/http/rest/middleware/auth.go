package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"coursehub/pkg/auth"
	"coursehub/pkg/common"
)

// Authenticate validates the bearer token on every request and places
// the caller's identity in the request context. Requests are throttled
// per client IP before validation and per user after it.
func Authenticate(manager *auth.JWTManager, ipLimiter *auth.IPRateLimiter, userLimiter *auth.UserRateLimiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ClientIP(r)

			if ipLimiter != nil {
				allowed, err := ipLimiter.Allow(r.Context(), clientIP)
				if err != nil {
					logger.Error("Rate limiter error", zap.Error(err))
					common.RespondError(w, http.StatusInternalServerError, "an internal error occurred")
					return
				}
				if !allowed {
					common.RespondError(w, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
			}

			token := extractToken(r)
			if token == "" {
				common.RespondError(w, http.StatusUnauthorized, "missing authentication token")
				return
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.Error(err),
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
				)
				switch {
				case errors.Is(err, auth.ErrExpiredToken):
					common.RespondError(w, http.StatusUnauthorized, "token has expired")
				case errors.Is(err, auth.ErrInvalidSignature):
					common.RespondError(w, http.StatusUnauthorized, "invalid token signature")
				default:
					common.RespondError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			if userLimiter != nil {
				allowed, err := userLimiter.Allow(r.Context(), claims.UserID)
				if err != nil {
					logger.Error("User rate limiter error", zap.Error(err))
					common.RespondError(w, http.StatusInternalServerError, "an internal error occurred")
					return
				}
				if !allowed {
					common.RespondError(w, http.StatusTooManyRequests, "user rate limit exceeded")
					return
				}
			}

			userCtx := &auth.UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			}
			ctx := auth.SetUserInContext(r.Context(), userCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated callers that lack the admin role
func RequireAdmin() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUserFromContext(r.Context())
			if err != nil {
				common.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !user.IsAdmin() {
				common.RespondError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken reads the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// ClientIP extracts the client address, honoring proxy headers
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
