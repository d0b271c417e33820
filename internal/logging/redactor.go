package logging

import (
	"strings"
)

const redactedValue = "[REDACTED]"

// Redactor replaces the values of sensitive log fields.
type Redactor struct {
	sensitiveKeys map[string]bool
}

// NewRedactor creates a new Redactor with default sensitive keys.
func NewRedactor() *Redactor {
	return &Redactor{
		sensitiveKeys: map[string]bool{
			// Credentials
			"password":      true,
			"new_password":  true,
			"client_secret": true,
			"secret":        true,
			"secret_hash":   true,

			// SRP values
			"a":             true, // ephemeral client secret
			"small_a":       true,
			"srp_a":         true,
			"shared_secret": true,
			"s":             true,
			"x":             true,
			"verifier":      true,
			"key":           true,
			"hkdf":          true,

			// Provider challenge and response
			"secret_block":                true,
			"password_claim_secret_block": true,
			"password_claim_signature":    true,
			"claim_signature":             true,
			"session":                     true,

			// Issued tokens
			"access_token":  true,
			"id_token":      true,
			"refresh_token": true,
			"token":         true,
			"authorization": true,
		},
	}
}

// AddSensitiveKey adds a custom key to the redaction list.
func (r *Redactor) AddSensitiveKey(key string) {
	r.sensitiveKeys[strings.ToLower(key)] = true
}

// RemoveSensitiveKey removes a key from the redaction list.
func (r *Redactor) RemoveSensitiveKey(key string) {
	delete(r.sensitiveKeys, strings.ToLower(key))
}

// RedactFields redacts sensitive values from a map of fields.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))

	for k, v := range fields {
		switch nested := v.(type) {
		case map[string]any:
			if r.isSensitiveKey(k) {
				redacted[k] = redactedValue
			} else {
				redacted[k] = r.RedactFields(nested)
			}
		case map[string]string:
			// Wire parameter maps use the provider's upper-case key names
			if r.isSensitiveKey(k) {
				redacted[k] = redactedValue
			} else {
				redacted[k] = r.redactStrings(nested)
			}
		default:
			if r.isSensitiveKey(k) {
				redacted[k] = redactedValue
			} else {
				redacted[k] = v
			}
		}
	}

	return redacted
}

func (r *Redactor) redactStrings(fields map[string]string) map[string]string {
	redacted := make(map[string]string, len(fields))
	for k, v := range fields {
		if r.isSensitiveKey(k) {
			redacted[k] = redactedValue
		} else {
			redacted[k] = v
		}
	}
	return redacted
}

// isSensitiveKey matches the whole key, case-insensitively.
func (r *Redactor) isSensitiveKey(key string) bool {
	return r.sensitiveKeys[strings.ToLower(key)]
}
