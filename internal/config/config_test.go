package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"imgview/internal/config"
	"imgview/internal/errors"
	"imgview/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
viewer:
  max_width: 800
  max_height: 600
cache:
  left: 2
  right: 3
  workers: 8
sort:
  default: size
  ascending: false
listing:
  exclude:
    - "._*"
    - "*.tmp.*"
  extra_extensions:
    - ".jfif"
watch:
  enabled: false
  debounce_ms: 100
logging:
  debug: true
  json: true
metrics:
  addr: "127.0.0.1:9400"
`

const partialConfigYAML = `
cache:
  right: 4
`

const invalidYAML = `
viewer:
  max_width: [not, a, number
`

const invalidSortYAML = `
sort:
  default: colour
`

const invalidWorkersYAML = `
cache:
  workers: 0
`

const invalidGlobYAML = `
listing:
  exclude:
    - "[unclosed"
`

const invalidExtensionYAML = `
listing:
  extra_extensions:
    - "jpg"
`

func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validConfigYAML))
		require.NoError(t, err)

		assert.Equal(t, 800, cfg.Viewer.MaxWidth)
		assert.Equal(t, 600, cfg.Viewer.MaxHeight)
		assert.Equal(t, 1100, cfg.Viewer.WindowWidth, "unset keys keep defaults")
		assert.Equal(t, 2, cfg.Cache.Left)
		assert.Equal(t, 3, cfg.Cache.Right)
		assert.Equal(t, 8, cfg.Cache.Workers)
		assert.Equal(t, types.SortSize, cfg.SortField())
		assert.False(t, cfg.Sort.Ascending)
		assert.Equal(t, []string{"._*", "*.tmp.*"}, cfg.Listing.Exclude)
		assert.Equal(t, []string{".jfif"}, cfg.Listing.ExtraExtensions)
		assert.False(t, cfg.Watch.Enabled)
		assert.Equal(t, 100, cfg.Watch.DebounceMs)
		assert.True(t, cfg.Logging.Debug)
		assert.True(t, cfg.Logging.JSON)
		assert.Equal(t, "127.0.0.1:9400", cfg.Metrics.Addr)
	})

	t.Run("partial config merges with defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, partialConfigYAML))
		require.NoError(t, err)

		assert.Equal(t, 1, cfg.Cache.Left)
		assert.Equal(t, 4, cfg.Cache.Right)
		assert.Equal(t, 4, cfg.Cache.Workers)
		assert.Equal(t, 1024, cfg.Viewer.MaxWidth)
		assert.Equal(t, 728, cfg.Viewer.MaxHeight)
		assert.Equal(t, types.SortModTime, cfg.SortField())
		assert.True(t, cfg.Sort.Ascending)
		assert.True(t, cfg.Watch.Enabled)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.New(), cfg)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	invalid := map[string]struct {
		content string
		param   string
	}{
		"unknown sort field": {invalidSortYAML, "sort.default"},
		"zero workers":       {invalidWorkersYAML, "cache.workers"},
		"bad glob":           {invalidGlobYAML, "listing.exclude"},
		"extension no dot":   {invalidExtensionYAML, "listing.extra_extensions"},
	}
	for name, tc := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfigFile(createTestYAML(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.True(t, errors.IsInvalidConfig(err))

			var configErr *errors.ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tc.param, configErr.Param())
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, config.New().Validate())
		assert.NoError(t, config.NewTestConfig().Validate())
	})

	t.Run("nil config", func(t *testing.T) {
		var cfg *config.Config
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative neighbor window", func(t *testing.T) {
		cfg := config.New()
		cfg.Cache.Left = -1
		assert.True(t, errors.IsInvalidConfig(cfg.Validate()))
	})

	t.Run("zero max size", func(t *testing.T) {
		cfg := config.New()
		cfg.Viewer.MaxHeight = 0
		assert.True(t, errors.IsInvalidConfig(cfg.Validate()))
	})

	t.Run("negative debounce", func(t *testing.T) {
		cfg := config.New()
		cfg.Watch.DebounceMs = -5
		assert.True(t, errors.IsInvalidConfig(cfg.Validate()))
	})

	t.Run("empty sort field means none", func(t *testing.T) {
		cfg := config.New()
		cfg.Sort.Default = ""
		require.NoError(t, cfg.Validate())
		assert.Equal(t, types.SortNone, cfg.SortField())
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := config.New()
	cfg.Cache.Right = 5
	cfg.Sort.Default = "btime"
	cfg.Listing.Exclude = []string{"*.part"}

	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Cache.Right)
	assert.Equal(t, types.SortBirthTime, loaded.SortField())
	assert.Equal(t, []string{"*.part"}, loaded.Listing.Exclude)
}
