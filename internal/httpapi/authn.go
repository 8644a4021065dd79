package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"manasa.shop/internal/admin"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// Auth endpoints and infra probes stay open; everything else under /api/v1/
// requires a bearer token. This is applied server-side uniformly, no matter
// which client module is calling.
var publicPaths = []string{
	"/healthz",
	"/readyz",
	"/v1/info",
	"/metrics",
	"/api/v1/admin/signin",
	"/api/v1/admin/login",
	"/api/v1/admin/resetPasswordRequest",
	"/api/v1/admin/resetPassword",
}

func (a *API) withAuth(next http.Handler) http.Handler {
	if a.svc.Admin == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		claims, err := a.svc.Admin.ParseAndValidate(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := admin.ContextWithUser(r.Context(), claims.Subject, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
