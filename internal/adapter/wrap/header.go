package wrap

import "strings"

// AuthorizationHeader formats a token for the Authorization header. The token
// is placed between the quotes verbatim.
func AuthorizationHeader(token string) string {
	return `WRAP access_token="` + token + `"`
}

// ParseAuthorizationHeader returns the token carried by a
// `WRAP access_token="..."` header value.
func ParseAuthorizationHeader(value string) (string, bool) {
	scheme, params, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok || !strings.EqualFold(scheme, "WRAP") {
		return "", false
	}
	key, quoted, ok := strings.Cut(strings.TrimSpace(params), "=")
	if !ok || key != "access_token" {
		return "", false
	}
	if len(quoted) < 2 || quoted[0] != '"' || quoted[len(quoted)-1] != '"' {
		return "", false
	}
	token := quoted[1 : len(quoted)-1]
	if token == "" {
		return "", false
	}
	return token, true
}
