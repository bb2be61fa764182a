package middleware

import (
	"context"
	"net/http"
	"strings"
)

type tokenCtxKey struct{}

// BearerToken captures the caller's bearer token into the request context
// so the catalog client can forward it. The gateway never validates or
// mints tokens itself.
func BearerToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
				ctx := context.WithValue(r.Context(), tokenCtxKey{}, token)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TokenFromContext returns the captured bearer token, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenCtxKey{}).(string)
	return token, ok && token != ""
}

// ContextTokenProvider adapts the captured token to the catalog client's
// token source.
type ContextTokenProvider struct{}

func (ContextTokenProvider) Token(ctx context.Context) (string, bool) {
	return TokenFromContext(ctx)
}
