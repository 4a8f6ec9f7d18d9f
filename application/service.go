package application

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitmeta/config"
	"github.com/rios0rios0/gitmeta/domain"
	providerPkg "github.com/rios0rios0/gitmeta/infrastructure/provider"
)

// MetadataService resolves (platform, project id) pairs into providers and
// exposes the normalized metadata operations to the CLI and to embedding
// callers. Provider instances are cached per project so their listing
// memoization survives across calls within one service lifetime.
type MetadataService struct {
	registry  *providerPkg.Registry
	cfg       *config.Config
	providers map[string]domain.Provider
}

// NewMetadataService creates a service backed by the given registry and
// loaded configuration.
func NewMetadataService(registry *providerPkg.Registry, cfg *config.Config) *MetadataService {
	return &MetadataService{
		registry:  registry,
		cfg:       cfg,
		providers: make(map[string]domain.Provider),
	}
}

// Provider resolves a provider for the platform and project id. Repeated
// requests for the same pair return the same instance.
func (s *MetadataService) Provider(platform, projectID string) (domain.Provider, error) {
	key := platform + "::" + projectID
	if prov, ok := s.providers[key]; ok {
		return prov, nil
	}

	entry, err := s.cfg.Find(platform)
	if err != nil {
		return nil, err
	}

	prov, err := s.registry.Get(entry.ToProviderConfig(), projectID)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Resolved %q on %s", projectID, prov.Name())
	s.providers[key] = prov
	return prov, nil
}

// Branches lists all branches of the project on the given platform.
func (s *MetadataService) Branches(
	ctx context.Context,
	platform, projectID string,
) ([]domain.BranchInfo, error) {
	prov, err := s.Provider(platform, projectID)
	if err != nil {
		return nil, err
	}

	branches, err := prov.Branches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of %q: %w", projectID, err)
	}

	logger.Infof("Found %d branches in %q", len(branches), projectID)
	return branches, nil
}

// Tags lists all tags of the project on the given platform.
func (s *MetadataService) Tags(
	ctx context.Context,
	platform, projectID string,
) ([]domain.TagInfo, error) {
	prov, err := s.Provider(platform, projectID)
	if err != nil {
		return nil, err
	}

	tags, err := prov.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags of %q: %w", projectID, err)
	}

	logger.Infof("Found %d tags in %q", len(tags), projectID)
	return tags, nil
}

// ReadContent fetches and decodes one file from the project's default branch.
func (s *MetadataService) ReadContent(
	ctx context.Context,
	platform, projectID, path string,
) ([]byte, error) {
	prov, err := s.Provider(platform, projectID)
	if err != nil {
		return nil, err
	}
	return prov.ReadContent(ctx, path)
}
