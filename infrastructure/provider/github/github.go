package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/rios0rios0/gitmeta/domain"
	"github.com/rios0rios0/gitmeta/internal/memo"
	"github.com/rios0rios0/gitmeta/internal/rest"
)

const (
	providerName    = "github"
	defaultServer   = "https://github.com"
	defaultEndpoint = "https://api.github.com"
)

// Provider implements domain.Provider for GitHub.
// Listings are plain top-level arrays paginated through the Link header;
// file content arrives Base64-encoded inside a contents envelope.
type Provider struct {
	config   domain.ProviderConfig
	project  domain.Project
	client   *rest.Client
	branches *memo.Cache[[]domain.BranchInfo]
	tags     *memo.Cache[[]domain.TagInfo]
}

// New creates a GitHub provider for the given project.
func New(cfg domain.ProviderConfig, projectID string) domain.Provider {
	if cfg.Server == "" {
		cfg.Server = defaultServer
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}

	httpClient := oauth2.NewClient(context.Background(), nil)
	if cfg.Token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), source)
	}

	return &Provider{
		config:   cfg,
		project:  domain.NewProject(projectID),
		client:   rest.NewClientWithHTTP(rest.Auth{}, httpClient),
		branches: memo.NewCache[[]domain.BranchInfo](),
		tags:     memo.NewCache[[]domain.TagInfo](),
	}
}

func (p *Provider) Name() string { return providerName }

func (p *Provider) EndpointURL() string {
	return fmt.Sprintf("%s/repos/%s", p.config.Endpoint, p.project.ID)
}

func (p *Provider) ContentURL(path string) string {
	return fmt.Sprintf("%s/contents/%s", p.EndpointURL(), escapePath(path))
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
			ctx, p.client, p.EndpointURL()+"/branches",
			rest.LinkPager{}, "",
			func(record gjson.Result) (domain.BranchInfo, error) {
				return domain.BranchInfo{
					Name:     record.Get("name").String(),
					CommitID: record.Get("commit.sha").String(),
				}, nil
			},
		)
	})
}

func (p *Provider) Tags(ctx context.Context) ([]domain.TagInfo, error) {
	return p.tags.Do("tags", func() ([]domain.TagInfo, error) {
		return rest.FetchAll(
			ctx, p.client, p.EndpointURL()+"/tags",
			rest.LinkPager{}, "",
			func(record gjson.Result) (domain.TagInfo, error) {
				return domain.TagInfo{
					Name:     record.Get("name").String(),
					CommitID: record.Get("commit.sha").String(),
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

	// GitHub wraps the Base64 payload at 60 columns
	encoded := strings.ReplaceAll(content.String(), "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode content of %q: %w", path, err)
	}
	return decoded, nil
}

// escapePath URL-encodes each path segment, keeping the separators.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
