package config

import (
	"testing"
	"time"

	"github.com/go-quicktest/qt"

	"cryptomobile/internal/bits"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "DATABASE_URL", "LOG_LEVEL", "JWT_SECRET", "JWT_EXPIRES_IN", "MAX_MESSAGE_BITS", "MCT_ROUNDS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}
	c := Load()
	qt.Assert(t, qt.Equals(c.HTTPPort, "8080"))
	qt.Assert(t, qt.Equals(c.LogLevel, "info"))
	qt.Assert(t, qt.Equals(c.JWTExpiresIn, 24*time.Hour))
	qt.Assert(t, qt.Equals(c.MaxMessageBits, bits.DefaultMaxBits))
	qt.Assert(t, qt.Equals(c.MCTRounds, 1000))
	qt.Assert(t, qt.Equals(c.ShutdownTimeout, 10*time.Second))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("MAX_MESSAGE_BITS", "4096")
	t.Setenv("MCT_ROUNDS", "-3")
	t.Setenv("SHUTDOWN_TIMEOUT", "bogus")
	c := Load()
	qt.Assert(t, qt.Equals(c.HTTPPort, "9090"))
	qt.Assert(t, qt.Equals(c.JWTExpiresIn, 90*time.Minute))
	qt.Assert(t, qt.Equals(c.MaxMessageBits, 4096))
	qt.Assert(t, qt.Equals(c.MCTRounds, 1000))
	qt.Assert(t, qt.Equals(c.ShutdownTimeout, 10*time.Second))
}
