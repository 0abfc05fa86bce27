package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/smartware/smartware-api/internal/server/auth"
	"github.com/smartware/smartware-api/internal/server/services"
)

type contextKey string

const claimsContextKey contextKey = "authClaims"

// RequireAuth admits requests carrying a valid Bearer access token and
// stores the verified claims in the request context.
func RequireAuth(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeMessage(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := issuer.ParseAccessToken(token)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth, or nil on
// unauthenticated routes.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

// viewerInfo extracts the client address and user agent for view
// accounting. X-Forwarded-For wins over the socket address when a proxy
// sits in front.
func viewerInfo(r *http.Request) services.ViewerInfo {
	ip := r.Header.Get("X-Forwarded-For")
	if i := strings.IndexByte(ip, ','); i >= 0 {
		ip = ip[:i]
	}
	ip = strings.TrimSpace(ip)
	if ip == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ip = host
	}
	return services.ViewerInfo{IPAddress: ip, UserAgent: r.UserAgent()}
}
