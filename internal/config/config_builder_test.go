package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile drops body into a temp file and returns its path.
func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cardsync.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestConfigBuilder_StartsClean(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestConfigBuilder_BuildReportsAccumulatedError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestConfigBuilder_BuildValidatesMergedResult(t *testing.T) {
	// No source supplied a dataset or a client id, so the assembled
	// config comes back together with the validation error.
	cfg, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestConfigBuilder_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Dataset: "standard_57", ClientID: "kiosk-3"}},
		&StructuredConfig{App: App{Dataset: "overridden", Version: "4.1.0"}},
		&StructuredConfig{Server: Server{RateLimitPerMinute: 90}},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	// mergo fills only fields still at zero, so the earliest source to
	// set a field keeps it and later sources contribute the rest.
	assert.Equal(t, "standard_57", cfg.App.Dataset)
	assert.Equal(t, "kiosk-3", cfg.App.ClientID)
	assert.Equal(t, "4.1.0", cfg.App.Version)
	assert.Equal(t, 90, cfg.Server.RateLimitPerMinute)
}

func TestConfigBuilder_WithEnv(t *testing.T) {
	t.Run("reads the environment into one source", func(t *testing.T) {
		scrubEnv(t)
		t.Setenv("APP_DATASET", "promo_cards")
		t.Setenv("APP_CLIENT_ID", "register-04")

		b := newConfigBuilder()
		require.Same(t, b, b.withEnv())

		require.Len(t, b.configs, 1)
		assert.Equal(t, "promo_cards", b.configs[0].App.Dataset)
		assert.Equal(t, "register-04", b.configs[0].App.ClientID)
		assert.NoError(t, b.err)
	})

	t.Run("empty environment still appends a source", func(t *testing.T) {
		scrubEnv(t)

		b := newConfigBuilder().withEnv()
		require.Len(t, b.configs, 1)
		assert.Equal(t, &StructuredConfig{}, b.configs[0])
		assert.NoError(t, b.err)
	})
}

func TestConfigBuilder_WithFlags(t *testing.T) {
	resetFlags(t, "-dataset", "magic_cards")

	b := newConfigBuilder()
	require.Same(t, b, b.withFlags())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "magic_cards", b.configs[0].App.Dataset)
}

func TestConfigBuilder_WithJSON(t *testing.T) {
	t.Run("ignored when no source named a file", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{})

		require.Same(t, b, b.withJSON())
		assert.Len(t, b.configs, 1)
		assert.NoError(t, b.err)
	})

	t.Run("loads the named file as one more source", func(t *testing.T) {
		path := writeConfigFile(t, `{"app": {"dataset": "from_file", "client_id": "imported"}}`)

		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
		b.withJSON()

		require.NoError(t, b.err)
		require.Len(t, b.configs, 2)
		assert.Equal(t, "from_file", b.configs[1].App.Dataset)
		assert.Equal(t, "imported", b.configs[1].App.ClientID)
	})

	t.Run("the last source to name a path wins", func(t *testing.T) {
		first := writeConfigFile(t, `{"app": {"dataset": "first"}}`)
		second := writeConfigFile(t, `{"app": {"dataset": "second"}}`)

		b := newConfigBuilder()
		b.configs = append(b.configs,
			&StructuredConfig{JSONFilePath: first},
			&StructuredConfig{JSONFilePath: second},
		)
		b.withJSON()

		require.NoError(t, b.err)
		require.Len(t, b.configs, 3)
		assert.Equal(t, "second", b.configs[2].App.Dataset)
	})

	t.Run("a missing file poisons the builder", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/no/such/cardsync.json"})
		b.withJSON()

		assert.Error(t, b.err)
		assert.Len(t, b.configs, 1)
	})

	t.Run("a malformed file poisons the builder", func(t *testing.T) {
		path := writeConfigFile(t, `{"app": `)

		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
		b.withJSON()

		assert.Error(t, b.err)
	})

	t.Run("an earlier error is kept alongside a clean load", func(t *testing.T) {
		path := writeConfigFile(t, `{"app": {"dataset": "still_loaded"}}`)

		b := newConfigBuilder()
		b.err = assert.AnError
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
		b.withJSON()

		assert.ErrorIs(t, b.err, assert.AnError)
	})
}

func TestConfigBuilder_WithDefaults(t *testing.T) {
	t.Run("defaults alone make a runnable config", func(t *testing.T) {
		b := newConfigBuilder()
		require.Same(t, b, b.withDefaults())

		cfg, err := b.build()
		require.NoError(t, err)

		assert.Equal(t, DefaultDataset, cfg.App.Dataset)
		assert.Equal(t, DefaultClientID, cfg.App.ClientID)
		assert.Equal(t, DefaultServerAddress, cfg.Server.HTTPAddress)
		assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
		assert.Equal(t, DefaultRateLimitPerMinute, cfg.Server.RateLimitPerMinute)
		assert.Equal(t, DefaultBaseURL, cfg.Adapter.BaseURL)
		assert.Equal(t, DefaultFetchTimeout, cfg.Adapter.RequestTimeout)
		assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
	})

	t.Run("explicit values are never overridden", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{
			App:    App{Dataset: "magic_cards", ClientID: "kiosk-7"},
			Server: Server{RateLimitPerMinute: 600},
		})

		cfg, err := b.withDefaults().build()
		require.NoError(t, err)

		assert.Equal(t, "magic_cards", cfg.App.Dataset)
		assert.Equal(t, "kiosk-7", cfg.App.ClientID)
		assert.Equal(t, 600, cfg.Server.RateLimitPerMinute)
		assert.Equal(t, DefaultBaseURL, cfg.Adapter.BaseURL)
	})
}

func TestGetStructuredConfig_SourcePrecedence(t *testing.T) {
	scrubEnv(t)
	path := writeConfigFile(t, `{
		"app": {"dataset": "from-json"},
		"server": {"rate_limit_per_minute": 90}
	}`)
	t.Setenv("APP_DATASET", "from-env")
	t.Setenv("CONFIG", path)
	resetFlags(t, "-client-id", "from-flags")

	cfg, err := GetStructuredConfig()
	require.NoError(t, err)

	// env beats flags beats the file; defaults only fill the remainder
	assert.Equal(t, "from-env", cfg.App.Dataset)
	assert.Equal(t, "from-flags", cfg.App.ClientID)
	assert.Equal(t, 90, cfg.Server.RateLimitPerMinute)
	assert.Equal(t, DefaultServerAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
}
