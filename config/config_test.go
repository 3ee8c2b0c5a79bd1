package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FIREBASE_PROJECT_ID", "unifriend-test")
	t.Setenv("IDENTITY_ISSUER", "")
	t.Setenv("RATE_LIMIT_MAX", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("CRON_ENABLED", "")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 8080, env.PORT)
	assert.Equal(t, "postgres", env.DB_DRIVER)
	assert.Equal(t, "https://securetoken.google.com/unifriend-test", env.IDENTITY_ISSUER)
	assert.Equal(t, DefaultJWKSURL, env.IDENTITY_JWKS_URL)
	assert.Equal(t, []string{"https://unifriend.in", "https://www.unifriend.in"}, env.ALLOWED_ORIGINS)
	assert.Equal(t, 100, env.RATE_LIMIT_MAX)
	assert.Equal(t, 15*time.Minute, env.RATE_LIMIT_WINDOW)
	assert.True(t, env.CRON_ENABLED)
	assert.True(t, env.IsProduction())
}

func TestGetDevelopmentOrigins(t *testing.T) {
	t.Setenv("GO_ENV", "development")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.unifriend.in, http://localhost:3000")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, "https://admin.unifriend.in", env.ALLOWED_ORIGINS[0])
	assert.Contains(t, env.ALLOWED_ORIGINS, "http://127.0.0.1:9002")

	count := 0
	for _, origin := range env.ALLOWED_ORIGINS {
		if origin == "http://localhost:3000" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGetRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "firestore")

	_, err := Get()
	assert.Error(t, err)
}
