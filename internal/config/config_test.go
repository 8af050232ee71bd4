package config

import (
	"context"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		TenantID:     "tenant-1",
		ClientID:     "client-1",
		SiteHostPath: "host.example:/sites/essais",
	}
	assert.NoError(t, valid.Validate())

	t.Run("missing fields are all named", func(t *testing.T) {
		err := Config{}.Validate()
		require.Error(t, err)
		assert.ErrorContains(t, err, "tenant_id")
		assert.ErrorContains(t, err, "client_id")
		assert.ErrorContains(t, err, "site_host_path")
	})
}

func TestConfigManagerDefaults(t *testing.T) {
	manager, err := NewConfigManager()
	require.NoError(t, err)

	cfg, err := manager.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://graph.microsoft.com/v1.0", cfg.GraphBaseURL)
	assert.Equal(t, "1-Essais/1-Temporaire", cfg.WorkingPath)
	assert.Equal(t, "1-Essais/2-Archives", cfg.ArchivePath)
	assert.Equal(t, "1-Essais/0-Documents/PVEA-Standards", cfg.TemplatesPath)
	assert.NotEmpty(t, cfg.ScratchDir)
}

func TestConfigManagerEnvOverrides(t *testing.T) {
	t.Setenv("DOSSIER_TENANT_ID", "tenant-env")
	t.Setenv("DOSSIER_CLIENT_ID", "client-env")
	t.Setenv("DOSSIER_SITE_HOST_PATH", "host.example:/sites/essais")
	t.Setenv("DOSSIER_WORKING_PATH", "custom/working")

	manager, err := NewConfigManager()
	require.NoError(t, err)

	cfg, err := manager.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tenant-env", cfg.TenantID)
	assert.Equal(t, "client-env", cfg.ClientID)
	assert.Equal(t, "custom/working", cfg.WorkingPath)
	assert.True(t, manager.IsConfigured(context.Background()))
}
