package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/padoca/confeitaria/internal/customers"
)

type ctxKey int

const customerIDKey ctxKey = iota

// Authenticator resolves the bearer session token into a customer id and
// stores it on the request context.
type Authenticator struct {
	Sessions *customers.Sessions
}

func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		id, err := a.Sessions.Resolve(r.Context(), token)
		if errors.Is(err, customers.ErrNoSession) {
			writeError(w, http.StatusUnauthorized, "log in first")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "session lookup failed")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), customerIDKey, id)))
	})
}

// CustomerID returns the authenticated customer id, zero when the request
// did not pass through Require.
func CustomerID(ctx context.Context) int64 {
	id, _ := ctx.Value(customerIDKey).(int64)
	return id
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if t, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(t)
	}
	return ""
}
