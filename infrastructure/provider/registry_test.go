package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitmeta/domain"
	"github.com/rios0rios0/gitmeta/infrastructure/provider"
	testdoubles "github.com/rios0rios0/gitmeta/test"
)

func TestProviderRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register and retrieve a provider by platform", func(t *testing.T) {
		t.Parallel()

		// given
		reg := provider.NewRegistry()
		factory := func(_ domain.ProviderConfig, _ string) domain.Provider {
			return &testdoubles.SpyProvider{ProviderName: "test-platform"}
		}
		reg.Register("test-platform", factory)

		// when
		prov, err := reg.Get(domain.ProviderConfig{Platform: "test-platform"}, "org/repo")

		// then
		require.NoError(t, err)
		assert.NotNil(t, prov)
		assert.Equal(t, "test-platform", prov.Name())
	})

	t.Run("should return ConfigError for an unknown platform", func(t *testing.T) {
		t.Parallel()

		// given
		reg := provider.NewRegistry()

		// when
		prov, err := reg.Get(domain.ProviderConfig{Platform: "sourcehut"}, "org/repo")

		// then
		var configErr *domain.ConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Nil(t, prov)
		assert.Equal(t, "sourcehut", configErr.Platform)
	})

	t.Run("should pass config and project id through to the factory", func(t *testing.T) {
		t.Parallel()

		// given
		reg := provider.NewRegistry()
		var gotCfg domain.ProviderConfig
		var gotProject string
		reg.Register("spy", func(cfg domain.ProviderConfig, projectID string) domain.Provider {
			gotCfg = cfg
			gotProject = projectID
			return &testdoubles.SpyProvider{ProviderName: "spy"}
		})
		cfg := domain.ProviderConfig{Platform: "spy", Token: "secret"}

		// when
		_, err := reg.Get(cfg, "group/project")

		// then
		require.NoError(t, err)
		assert.Equal(t, cfg, gotCfg)
		assert.Equal(t, "group/project", gotProject)
	})

	t.Run("should list registered platforms sorted", func(t *testing.T) {
		t.Parallel()

		// given
		reg := provider.NewRegistry()
		factory := func(_ domain.ProviderConfig, _ string) domain.Provider {
			return &testdoubles.DummyProvider{}
		}
		reg.Register("gitlab", factory)
		reg.Register("azuredevops", factory)
		reg.Register("github", factory)

		// when
		names := reg.Names()

		// then
		assert.Equal(t, []string{"azuredevops", "github", "gitlab"}, names)
	})
}
