package bitbucket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/rios0rios0/gitmeta/domain"
	"github.com/rios0rios0/gitmeta/internal/memo"
	"github.com/rios0rios0/gitmeta/internal/rest"
)

const (
	providerName    = "bitbucket"
	defaultServer   = "https://bitbucket.org"
	defaultEndpoint = "https://api.bitbucket.org"
)

// Provider implements domain.Provider for Bitbucket Cloud.
// Listings use the 2.0 paged envelope: items under "values", the next page as
// an absolute URL in the "next" body field. File content is served raw by the
// src endpoint, with no envelope at all.
type Provider struct {
	config   domain.ProviderConfig
	project  domain.Project
	client   *rest.Client
	branches *memo.Cache[[]domain.BranchInfo]
	tags     *memo.Cache[[]domain.TagInfo]
}

// New creates a Bitbucket provider for the given "workspace/repo" project.
func New(cfg domain.ProviderConfig, projectID string) domain.Provider {
	if cfg.Server == "" {
		cfg.Server = defaultServer
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}

	return &Provider{
		config:   cfg,
		project:  domain.NewProject(projectID),
		client:   rest.NewClient(rest.BearerAuth(cfg.Token)),
		branches: memo.NewCache[[]domain.BranchInfo](),
		tags:     memo.NewCache[[]domain.TagInfo](),
	}
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) EndpointURL() string {
	return fmt.Sprintf("%s/2.0/repositories/%s", p.config.Endpoint, p.project.ID)
}

func (p *Provider) ContentURL(path string) string {
	return fmt.Sprintf("%s/src/HEAD/%s", p.EndpointURL(), escapePath(path))
}

func (p *Provider) CloneURL() string {
	return fmt.Sprintf("%s/%s.git", p.config.Server, p.project.ID)
}

func (p *Provider) RepositoryURL() string {
	return fmt.Sprintf("%s/%s", p.config.Server, p.project.ID)
}

func (p *Provider) Branches(ctx context.Context) ([]domain.BranchInfo, error) {
	return p.branches.Do("branches", func() ([]domain.BranchInfo, error) {
		return rest.FetchAll(
			ctx, p.client, p.EndpointURL()+"/refs/branches",
			rest.BodyPager{Field: "next"}, "values",
			func(record gjson.Result) (domain.BranchInfo, error) {
				return domain.BranchInfo{
					Name:     record.Get("name").String(),
					CommitID: record.Get("target.hash").String(),
				}, nil
			},
		)
	})
}

func (p *Provider) Tags(ctx context.Context) ([]domain.TagInfo, error) {
	return p.tags.Do("tags", func() ([]domain.TagInfo, error) {
		return rest.FetchAll(
			ctx, p.client, p.EndpointURL()+"/refs/tags",
			rest.BodyPager{Field: "next"}, "values",
			func(record gjson.Result) (domain.TagInfo, error) {
				return domain.TagInfo{
					Name:     record.Get("name").String(),
					CommitID: record.Get("target.hash").String(),
				}, nil
			},
		)
	})
}

func (p *Provider) ReadContent(ctx context.Context, path string) ([]byte, error) {
	contentURL := p.ContentURL(path)

	resp, err := p.client.Get(ctx, contentURL)
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) && fetchErr.Status == http.StatusNotFound {
			return nil, &domain.ContentNotFoundError{Path: path, URL: contentURL}
		}
		return nil, err
	}

	// src serves the file bytes directly
	return resp.Body, nil
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
