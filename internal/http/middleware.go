package http

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pinturas-diamante/catalog-site/internal/auth"
	"github.com/pinturas-diamante/catalog-site/internal/http/handlers"
	rl "github.com/pinturas-diamante/catalog-site/internal/http/rate_limiter"
	"go.uber.org/zap"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SessionMiddleware makes sure every request carries a cart session. A missing
// or invalid cookie gets a freshly issued session.
func SessionMiddleware(sessions *auth.Sessions, cookie CookieConfig, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(cookie.Name); err == nil {
				if id, err := sessions.Parse(c.Value); err == nil {
					sessionID = id
				}
			}

			if sessionID == "" {
				id, token, err := sessions.Issue()
				if err != nil {
					log.Error("could not issue session", zap.Error(err))
					http.Error(w, "could not start session", http.StatusInternalServerError)
					return
				}
				sessionID = id
				http.SetCookie(w, &http.Cookie{
					Name:     cookie.Name,
					Value:    token,
					Path:     "/",
					MaxAge:   int(sessions.TTL().Seconds()),
					HttpOnly: true,
					Secure:   cookie.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithSessionID(r.Context(), sessionID)))
		})
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// RateLimit rejects clients that exhaust their token bucket with 429.
func RateLimit(limiter *rl.Limiter, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				log.Warn("rate limit exceeded", zap.String("client", ip), zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
