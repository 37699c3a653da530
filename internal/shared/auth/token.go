package auth

import (
	"net/http"
	"strings"
)

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header value.
func ExtractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// ExtractToken looks at the Authorization header first and then at the queryParam
// ("token" when empty). Browsers cannot set headers on websocket upgrades, hence the query fallback.
func ExtractToken(r *http.Request, queryParam string) string {
	if r == nil {
		return ""
	}
	if token := ExtractBearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if queryParam == "" {
		queryParam = "token"
	}
	if r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}
