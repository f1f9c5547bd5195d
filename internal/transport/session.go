package transport

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

type ctxKey int

const (
	sessionKey ctxKey = iota
	userKey
)

// sessionPattern bounds guest ids so they are safe inside state keys.
var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// SessionFrom returns the id persisted state is namespaced under.
func SessionFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sessionKey).(string); ok {
		return s
	}
	return ""
}

// UserFrom returns the verified uid, or "" for guests.
func UserFrom(ctx context.Context) string {
	if s, ok := ctx.Value(userKey).(string); ok {
		return s
	}
	return ""
}

func withSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// WithSession assigns every request a session. Guests send X-Session-ID;
// when it is missing or malformed a new id is generated. The id in use is
// echoed back in the response header.
func WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if !sessionPattern.MatchString(id) {
			id = uuid.New().String()
		}
		w.Header().Set(SessionHeader, id)
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), id)))
	})
}
