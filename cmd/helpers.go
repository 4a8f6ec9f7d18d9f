package cmd

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitmeta/application"
	"github.com/rios0rios0/gitmeta/config"
	providerPkg "github.com/rios0rios0/gitmeta/infrastructure/provider"
	adoProv "github.com/rios0rios0/gitmeta/infrastructure/provider/azuredevops"
	bbProv "github.com/rios0rios0/gitmeta/infrastructure/provider/bitbucket"
	gtProv "github.com/rios0rios0/gitmeta/infrastructure/provider/gitea"
	ghProv "github.com/rios0rios0/gitmeta/infrastructure/provider/github"
	glProv "github.com/rios0rios0/gitmeta/infrastructure/provider/gitlab"
)

// newRegistry builds the registry with every supported platform.
func newRegistry() *providerPkg.Registry {
	reg := providerPkg.NewRegistry()
	reg.Register("github", ghProv.New)
	reg.Register("gitlab", glProv.New)
	reg.Register("azuredevops", adoProv.New)
	reg.Register("bitbucket", bbProv.New)
	reg.Register("gitea", gtProv.New)
	return reg
}

// loadConfig reads the providers file, falling back to a single entry built
// from the command-line flags when no file is available. Flag values override
// the file entry for the selected platform.
func loadConfig() *config.Config {
	cfg := configFromFile()
	if cfg == nil {
		cfg = &config.Config{
			Providers: []config.PlatformConfig{{Platform: platform}},
		}
	}

	for i := range cfg.Providers {
		if cfg.Providers[i].Platform != platform {
			continue
		}
		if serverURL != "" {
			cfg.Providers[i].Server = serverURL
		}
		if endpointURL != "" {
			cfg.Providers[i].Endpoint = endpointURL
		}
		if token != "" {
			cfg.Providers[i].Token = token
		}
		return cfg
	}

	// Selected platform absent from the file: synthesize an entry from flags
	cfg.Providers = append(cfg.Providers, config.PlatformConfig{
		Platform: platform,
		Server:   serverURL,
		Endpoint: endpointURL,
		Token:    token,
	})
	return cfg
}

func configFromFile() *config.Config {
	path := configPath
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			logger.Debugf("No providers file found: %v", err)
			return nil
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Warnf("Ignoring providers file %q: %v", path, err)
		return nil
	}

	logger.Debugf("Loaded providers file %q", path)
	return cfg
}

// newService wires the registry and configuration into the metadata service.
func newService() *application.MetadataService {
	return application.NewMetadataService(newRegistry(), loadConfig())
}
