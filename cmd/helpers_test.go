package cmd //nolint:testpackage // tests unexported helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register every supported platform", func(t *testing.T) {
		t.Parallel()

		// when
		reg := newRegistry()

		// then
		assert.Equal(
			t,
			[]string{"azuredevops", "bitbucket", "gitea", "github", "gitlab"},
			reg.Names(),
		)
	})
}

//nolint:paralleltest // mutates package-level flag variables
func TestLoadConfig(t *testing.T) {
	t.Run("should synthesize an entry from flags when no file exists", func(t *testing.T) {
		// given
		configPath = "/nonexistent/gitmeta.yaml"
		platform = "gitea"
		serverURL = "https://git.example.org"
		endpointURL = ""
		token = "gta-secret"
		defer resetFlags()

		// when
		cfg := loadConfig()

		// then
		entry, err := cfg.Find("gitea")
		assert.NoError(t, err)
		assert.Equal(t, "https://git.example.org", entry.Server)
		assert.Equal(t, "gta-secret", entry.Token)
	})

	t.Run("should append the selected platform when the file lacks it", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "gitmeta.yaml")
		content := "providers:\n  - platform: github\n    token: gh-token\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		configPath = path
		platform = "bitbucket"
		serverURL = ""
		endpointURL = "https://api.bitbucket.example.org"
		token = ""
		defer resetFlags()

		// when
		cfg := loadConfig()

		// then
		entry, err := cfg.Find("bitbucket")
		assert.NoError(t, err)
		assert.Equal(t, "https://api.bitbucket.example.org", entry.Endpoint)

		kept, err := cfg.Find("github")
		assert.NoError(t, err)
		assert.Equal(t, "gh-token", kept.Token)
	})
}

func resetFlags() {
	configPath = ""
	platform = "github"
	serverURL = ""
	endpointURL = ""
	token = ""
}
