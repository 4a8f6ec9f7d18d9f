package azuredevops

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
	providerName    = "azuredevops"
	defaultServer   = "https://dev.azure.com"
	defaultEndpoint = "https://dev.azure.com"
	apiVersion      = "7.0"
)

// Provider implements domain.Provider for Azure DevOps.
// A single /refs endpoint serves branches and tags, scoped by the filter query
// parameter and distinguished by the refs/heads/ and refs/tags/ name prefixes.
// Pages advance through the x-ms-continuationtoken response header.
type Provider struct {
	config   domain.ProviderConfig
	project  domain.Project
	client   *rest.Client
	branches *memo.Cache[[]domain.BranchInfo]
	tags     *memo.Cache[[]domain.TagInfo]
}

// New creates an Azure DevOps provider for the given project. The project id
// is "organization/project" with the repository named after the project, or
// "organization/project/repository" for multi-repo projects.
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
		client:   rest.NewClient(rest.BasicAuth("", cfg.Token)),
		branches: memo.NewCache[[]domain.BranchInfo](),
		tags:     memo.NewCache[[]domain.TagInfo](),
	}
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) EndpointURL() string {
	return fmt.Sprintf(
		"%s/%s/_apis/git/repositories/%s",
		p.config.Endpoint, p.projectPath(), p.project.Name,
	)
}

func (p *Provider) ContentURL(path string) string {
	return fmt.Sprintf(
		"%s/items?path=%s&includeContent=true&$format=json&api-version=%s",
		p.EndpointURL(), url.QueryEscape(path), apiVersion,
	)
}

func (p *Provider) CloneURL() string {
	return fmt.Sprintf("%s/%s/_git/%s", p.config.Server, p.projectPath(), p.project.Name)
}

func (p *Provider) RepositoryURL() string {
	return p.CloneURL()
}

func (p *Provider) Branches(ctx context.Context) ([]domain.BranchInfo, error) {
	return p.branches.Do("branches", func() ([]domain.BranchInfo, error) {
		return rest.FetchAll(
			ctx, p.client, p.refsURL("heads"),
			rest.TokenPager{Header: "x-ms-continuationtoken", Param: "continuationToken"},
			"value",
			func(record gjson.Result) (domain.BranchInfo, error) {
				return domain.BranchInfo{
					Name:     strings.TrimPrefix(record.Get("name").String(), "refs/heads/"),
					CommitID: record.Get("objectId").String(),
				}, nil
			},
		)
	})
}

func (p *Provider) Tags(ctx context.Context) ([]domain.TagInfo, error) {
	return p.tags.Do("tags", func() ([]domain.TagInfo, error) {
		return rest.FetchAll(
			ctx, p.client, p.refsURL("tags"),
			rest.TokenPager{Header: "x-ms-continuationtoken", Param: "continuationToken"},
			"value",
			func(record gjson.Result) (domain.TagInfo, error) {
				return domain.TagInfo{
					Name:     strings.TrimPrefix(record.Get("name").String(), "refs/tags/"),
					CommitID: record.Get("objectId").String(),
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

	// The $format=json envelope carries the file verbatim in "content"
	content := gjson.GetBytes(resp.Body, "content")
	if !content.Exists() {
		return nil, &domain.ContentNotFoundError{Path: path, URL: contentURL}
	}
	return []byte(content.String()), nil
}

// projectPath is the "organization/project" prefix of the id; for a plain
// two-segment id it is the id itself.
func (p *Provider) projectPath() string {
	if idx := strings.LastIndex(p.project.ID, "/"); idx > 0 && strings.Count(p.project.ID, "/") > 1 {
		return p.project.ID[:idx]
	}
	return p.project.ID
}

func (p *Provider) refsURL(filter string) string {
	return fmt.Sprintf("%s/refs?filter=%s&api-version=%s", p.EndpointURL(), filter, apiVersion)
}
