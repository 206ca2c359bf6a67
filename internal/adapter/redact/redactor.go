package redact

import (
	"net/url"
	"strings"
)

const RedactedPlaceholder = "[REDACTED]"

// DefaultFields are the WRAP form and response keys that carry secrets.
var DefaultFields = []string{"wrap_password", "wrap_access_token"}

// Redactor masks sensitive values in form-encoded payloads before they reach a log.
type Redactor struct {
	fieldsToRedact map[string]struct{} // Use a map for O(1) lookups
}

// NewRedactor creates a new Redactor instance with a given set of fields to redact.
func NewRedactor(fields []string) *Redactor {
	fieldSet := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		fieldSet[field] = struct{}{}
	}
	return &Redactor{fieldsToRedact: fieldSet}
}

// Values returns a copy of v with every sensitive key's values replaced.
func (r *Redactor) Values(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, vals := range v {
		if _, ok := r.fieldsToRedact[key]; ok {
			out[key] = []string{RedactedPlaceholder}
			continue
		}
		out[key] = append([]string(nil), vals...)
	}
	return out
}

// Pairs masks values in an '&'-joined key=value body without decoding it, so
// malformed bodies can still be logged safely. Pairs without '=' are kept.
func (r *Redactor) Pairs(body string) string {
	if len(r.fieldsToRedact) == 0 || body == "" {
		return body
	}
	parts := strings.Split(body, "&")
	for i, part := range parts {
		key, _, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		if _, ok := r.fieldsToRedact[key]; ok {
			parts[i] = key + "=" + RedactedPlaceholder
		}
	}
	return strings.Join(parts, "&")
}
