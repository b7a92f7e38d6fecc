// Package auth carries the user or role a request runs as, from the request header down to the
// host queries.
package auth

import (
	"context"
	"net/http"
	"strings"
)

// DefaultHeader carries the user or role requests are executed as
const DefaultHeader = "X-Page-Blocks-Role"

type userOrRoleKey struct{}

// WithUserOrRole returns a copy of ctx running as userOrRole.
func WithUserOrRole(ctx context.Context, userOrRole string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userOrRoleKey{}, userOrRole)
}

// UserOrRole returns the identity stored in ctx, empty when requests use the connection's own.
func UserOrRole(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	userOrRole, _ := ctx.Value(userOrRoleKey{}).(string)
	return userOrRole
}

type headerHandler struct {
	header  string
	handler http.Handler
}

// NewHeaderHandler stores the user or role found in the given request header in the request
// context. Requests without the header keep the identity of the backend connection.
func NewHeaderHandler(header string, handler http.Handler) http.Handler {
	if header == "" {
		header = DefaultHeader
	}
	return &headerHandler{header: header, handler: handler}
}

func (h *headerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if userOrRole := strings.TrimSpace(r.Header.Get(h.header)); userOrRole != "" {
		r = r.WithContext(WithUserOrRole(r.Context(), userOrRole))
	}
	h.handler.ServeHTTP(w, r)
}
