package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/schemaver/internal/config"
	"github.com/zeusync/schemaver/internal/core/observability/log"
	"github.com/zeusync/schemaver/internal/core/schema/registry"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "warn"

	app, err := InitializeApp(cfg)
	require.NoError(t, err)

	assert.Equal(t, log.LevelWarn, app.Logger.GetLevel())
	assert.Equal(t, registry.V3, app.Registry.Latest())
	require.NotNil(t, app.Validator)
	require.NotNil(t, app.Migrator)
}

func TestInitializeAppBadLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"

	_, err := InitializeApp(cfg)
	assert.Error(t, err)
}
