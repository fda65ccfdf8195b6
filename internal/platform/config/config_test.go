package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aradsms/compose_service/internal/compose_service/domain"
)

func TestLoad_Defaults(t *testing.T) {

	cfg, err := Load("compose_service")

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8090, cfg.ComposeAPIServicePort)
	assert.Equal(t, int64(1), cfg.BackendAccountID)
	assert.False(t, cfg.DirectUploadsEnabled)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("APP_BACKEND_ACCOUNT_ID", "17")
	t.Setenv("APP_DIRECT_UPLOADS_ENABLED", "true")
	t.Setenv("APP_HELP_CENTER_URL", "https://help.example.com")

	cfg, err := Load("compose_service")

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(17), cfg.BackendAccountID)
	assert.True(t, cfg.DirectUploadsEnabled)
	assert.Equal(t, domain.PortalConfig{HostURL: "http://localhost:3000", HelpCenterURL: "https://help.example.com"}, cfg.Portal())
}
