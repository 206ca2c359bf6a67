package redact

import (
	"net/url"
	"testing"
)

func TestRedactor_Pairs(t *testing.T) {
	redactor := NewRedactor(DefaultFields)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Redact token",
			input:    "wrap_access_token=abc%3d&wrap_access_token_expires_in=1200",
			expected: "wrap_access_token=[REDACTED]&wrap_access_token_expires_in=1200",
		},
		{
			name:     "Redact password in form",
			input:    "wrap_scope=http%3a%2f%2fns&wrap_name=owner&wrap_password=s3cret",
			expected: "wrap_scope=http%3a%2f%2fns&wrap_name=owner&wrap_password=[REDACTED]",
		},
		{
			name:     "No fields to redact",
			input:    "error=invalid_scope&other=1",
			expected: "error=invalid_scope&other=1",
		},
		{
			name:     "Malformed pairs kept",
			input:    "garbage&wrap_password=x",
			expected: "garbage&wrap_password=[REDACTED]",
		},
		{
			name:     "Empty body",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactor.Pairs(tt.input); got != tt.expected {
				t.Errorf("Pairs() got = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRedactor_Values(t *testing.T) {
	redactor := NewRedactor(DefaultFields)
	in := url.Values{
		"wrap_name":     {"owner"},
		"wrap_password": {"s3cret"},
	}

	out := redactor.Values(in)

	if out.Get("wrap_password") != RedactedPlaceholder {
		t.Errorf("expected password to be redacted, got %q", out.Get("wrap_password"))
	}
	if out.Get("wrap_name") != "owner" {
		t.Errorf("expected name to be kept, got %q", out.Get("wrap_name"))
	}
	if in.Get("wrap_password") != "s3cret" {
		t.Error("input values must not be modified")
	}
}
