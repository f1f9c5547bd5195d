package transport

import (
	"context"
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

// TokenVerifier is satisfied by the Firebase *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// WithAuthentication verifies a Bearer token when one is sent. A verified
// user's uid replaces the guest session so state follows the account.
// Requests without a token continue as guests; invalid tokens get 401.
func WithAuthentication(next http.Handler, verifier TokenVerifier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		raw, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || raw == "" || verifier == nil {
			http.Error(w, "Unauthorized: malformed token", http.StatusUnauthorized)
			return
		}
		token, err := verifier.VerifyIDToken(r.Context(), raw)
		if err != nil {
			log.Printf("[auth] token rejected: %v", err)
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, token.UID)
		ctx = withSession(ctx, token.UID)
		w.Header().Set(SessionHeader, token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithAuthProtection guards admin routes:
// 1. Authenticated Users -> Full Access
// 2. Guest Users -> Read Only Access (GET) IF publicRead is true
// 3. Otherwise -> 401 Unauthorized
func WithAuthProtection(next http.Handler, publicRead bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFrom(r.Context()) != "" {
			next.ServeHTTP(w, r)
			return
		}

		if publicRead && r.Method == http.MethodGet {
			w.Header().Set("X-Access-Type", "Public-Preview")
			next.ServeHTTP(w, r)
			return
		}

		http.Error(w, "Unauthorized: Login required", http.StatusUnauthorized)
	})
}
