package logging

import (
	"strings"

	"go.uber.org/zap"
)

const redacted = "[REDACTED]"

// IsSecretKey reports whether a config or field name holds a credential.
func IsSecretKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.Contains(k, "api_key"),
		strings.Contains(k, "apikey"),
		strings.Contains(k, "token"),
		strings.Contains(k, "secret"),
		strings.Contains(k, "password"),
		strings.Contains(k, "authorization"):
		return true
	}
	return false
}

// Mask hides a credential, keeping the last four characters so two keys
// can still be told apart in a log.
func Mask(v string) string {
	if len(v) <= 8 {
		if v == "" {
			return ""
		}
		return redacted
	}
	return redacted + v[len(v)-4:]
}

// String returns a zap string field, masked when key names a secret.
func String(key, val string) zap.Field {
	if IsSecretKey(key) {
		return zap.String(key, Mask(val))
	}
	return zap.String(key, val)
}
