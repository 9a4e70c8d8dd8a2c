package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
version: "1.0"
case:
  name: smith-laptop
redis:
  addr: localhost:6379
modules:
  RecentActivity:
    display_name: Recent Activity
  KeywordSearch:
    display_name: Keyword Search
`

func TestLoad(t *testing.T) {
	t.Run("loads valid config", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, validConfig))
		require.NoError(t, err)

		assert.Equal(t, "1.0", cfg.Version)
		assert.Equal(t, "smith-laptop", cfg.Case.Name)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		require.Len(t, cfg.Modules, 2)
		assert.Equal(t, "Recent Activity", cfg.Modules["RecentActivity"].DisplayName)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "version: [unclosed"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("defaults redis addr", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
version: "1.0"
case:
  name: smith-laptop
`))
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *CaseConfig {
		return &CaseConfig{
			Version: "1.0",
			Case:    CaseSection{Name: "smith-laptop"},
			Redis:   RedisConfig{Addr: "localhost:6379"},
		}
	}

	t.Run("accepts valid config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects unsupported version", func(t *testing.T) {
		cfg := valid()
		cfg.Version = "2.0"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported version")
	})

	t.Run("rejects negative redis db", func(t *testing.T) {
		cfg := valid()
		cfg.Redis.DB = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects module without display name", func(t *testing.T) {
		cfg := valid()
		cfg.Modules = map[string]ModuleConfig{"RecentActivity": {}}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "display_name is required")
	})
}

func TestValidateCaseName(t *testing.T) {
	t.Run("accepts valid names", func(t *testing.T) {
		for _, name := range []string{"a", "smith-laptop", "case-2024-001", "x1"} {
			assert.NoError(t, ValidateCaseName(name), "name %q should be valid", name)
		}
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		invalid := []string{
			"",
			"UPPERCASE",
			"-leading-hyphen",
			"trailing-hyphen-",
			"under_score",
			"spaces here",
			strings.Repeat("a", MaxCaseNameLength+1),
		}
		for _, name := range invalid {
			assert.Error(t, ValidateCaseName(name), "name %q should be invalid", name)
		}
	})
}
