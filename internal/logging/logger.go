// Package logging is the structured logger shared by the MedMate client.
package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Logger takes key/value pairs after the message:
//
//	log.Info(ctx, "request finished", "path", path, "status", status)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record.
	With(args ...any) Logger
}

const redacted = "[REDACTED]"

// secretKeys are attribute names whose values never reach the log output.
var secretKeys = []string{"password", "token", "signature", "secret", "cookie", "otp"}

// IsSecretKey reports whether an attribute named key is masked. Matching is
// case-insensitive and on substrings, so "new_password" is masked too.
func IsSecretKey(key string) bool {
	k := strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

// redactSecrets is a slog ReplaceAttr hook that masks secret values.
func redactSecrets(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindGroup && IsSecretKey(a.Key) {
		return slog.String(a.Key, redacted)
	}
	return a
}
