package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	SessionTTL    time.Duration
	AuditBuffer   int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SHOPEZ_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	signingKey := os.Getenv("SHOPEZ_JWT_SIGNING_KEY")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-secret-key-change-in-production"
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("SHOPEZ_SESSION_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	buffer := 0
	if os.Getenv("SHOPEZ_AUDIT_ASYNC") == "true" {
		buffer = 256
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: signingKey,
		SessionTTL:    ttl,
		AuditBuffer:   buffer,
	}
}
