package middleware

import (
	"context"
	"net/http"
	"redblack/pkg/resp"
	"redblack/pkg/token"
	"strings"
)

type ctxKey struct{}

// SessionAuth resolves the bearer session token into a session id on the request context
func SessionAuth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				resp.WriteError(w, http.StatusUnauthorized, "missing session token")
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), claims.ID)))
		})
	}
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sessionID)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
