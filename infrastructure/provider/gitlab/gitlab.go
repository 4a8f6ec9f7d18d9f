package gitlab

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/rios0rios0/gitmeta/domain"
	"github.com/rios0rios0/gitmeta/internal/memo"
	"github.com/rios0rios0/gitmeta/internal/rest"
)

const (
	providerName    = "gitlab"
	defaultServer   = "https://gitlab.com"
	defaultEndpoint = "https://gitlab.com/api/v4"
)

// Provider implements domain.Provider for GitLab.
// The project id travels path-escaped ("group%2Fproject") in every URL;
// listing pages advance through the x-next-page response header.
type Provider struct {
	config   domain.ProviderConfig
	project  domain.Project
	client   *rest.Client
	branches *memo.Cache[[]domain.BranchInfo]
	tags     *memo.Cache[[]domain.TagInfo]
}

// New creates a GitLab provider for the given project.
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
		client:   rest.NewClient(rest.HeaderAuth("PRIVATE-TOKEN", cfg.Token)),
		branches: memo.NewCache[[]domain.BranchInfo](),
		tags:     memo.NewCache[[]domain.TagInfo](),
	}
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) EndpointURL() string {
	return fmt.Sprintf("%s/projects/%s", p.config.Endpoint, url.PathEscape(p.project.ID))
}

func (p *Provider) ContentURL(path string) string {
	return fmt.Sprintf(
		"%s/repository/files/%s?ref=HEAD",
		p.EndpointURL(), url.PathEscape(path),
	)
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
			ctx, p.client, p.EndpointURL()+"/repository/branches",
			rest.PageNumberPager{Header: "x-next-page", Param: "page"}, "",
			func(record gjson.Result) (domain.BranchInfo, error) {
				return domain.BranchInfo{
					Name:     record.Get("name").String(),
					CommitID: record.Get("commit.id").String(),
				}, nil
			},
		)
	})
}

func (p *Provider) Tags(ctx context.Context) ([]domain.TagInfo, error) {
	return p.tags.Do("tags", func() ([]domain.TagInfo, error) {
		return rest.FetchAll(
			ctx, p.client, p.EndpointURL()+"/repository/tags",
			rest.PageNumberPager{Header: "x-next-page", Param: "page"}, "",
			func(record gjson.Result) (domain.TagInfo, error) {
				return domain.TagInfo{
					Name:     record.Get("name").String(),
					CommitID: record.Get("commit.id").String(),
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

	content := gjson.GetBytes(resp.Body, "content")
	if !content.Exists() {
		return nil, &domain.ContentNotFoundError{Path: path, URL: contentURL}
	}

	decoded, err := base64.StdEncoding.DecodeString(content.String())
	if err != nil {
		return nil, fmt.Errorf("failed to decode content of %q: %w", path, err)
	}
	return decoded, nil
}
