// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"fmt"

	"github.com/rios0rios0/gitmeta/domain"
)

// ---------------------------------------------------------------------------
// SpyProvider
// ---------------------------------------------------------------------------

// SpyProvider implements domain.Provider as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyProvider struct {
	// --- identity ---
	ProviderName string
	Endpoint     string
	WebURL       string

	// --- Branches ---
	BranchList  []domain.BranchInfo
	BranchesErr error
	// spy: number of Branches calls
	BranchCalls int

	// --- Tags ---
	TagList []domain.TagInfo
	TagsErr error
	// spy: number of Tags calls
	TagCalls int

	// --- ReadContent ---
	FileContents map[string][]byte // path -> content
	ReadErr      error
	// spy: paths that were requested
	ReadPaths []string
}

var _ domain.Provider = (*SpyProvider)(nil)

func (p *SpyProvider) Name() string { return p.ProviderName }

func (p *SpyProvider) EndpointURL() string { return p.Endpoint }

func (p *SpyProvider) ContentURL(path string) string {
	return fmt.Sprintf("%s/contents/%s", p.Endpoint, path)
}

func (p *SpyProvider) CloneURL() string { return p.WebURL + ".git" }

func (p *SpyProvider) RepositoryURL() string { return p.WebURL }

func (p *SpyProvider) Branches(_ context.Context) ([]domain.BranchInfo, error) {
	p.BranchCalls++
	return p.BranchList, p.BranchesErr
}

func (p *SpyProvider) Tags(_ context.Context) ([]domain.TagInfo, error) {
	p.TagCalls++
	return p.TagList, p.TagsErr
}

func (p *SpyProvider) ReadContent(_ context.Context, path string) ([]byte, error) {
	p.ReadPaths = append(p.ReadPaths, path)
	if p.ReadErr != nil {
		return nil, p.ReadErr
	}
	if content, ok := p.FileContents[path]; ok {
		return content, nil
	}
	return nil, &domain.ContentNotFoundError{Path: path, URL: p.ContentURL(path)}
}

// ---------------------------------------------------------------------------
// DummyProvider — satisfies the interface but does nothing (for compile checks)
// ---------------------------------------------------------------------------

// DummyProvider is a no-op implementation of domain.Provider.
// Use it only for interface compliance tests or as a placeholder.
type DummyProvider struct{}

var _ domain.Provider = (*DummyProvider)(nil)

func (d *DummyProvider) Name() string               { return "dummy" }
func (d *DummyProvider) EndpointURL() string        { return "" }
func (d *DummyProvider) ContentURL(_ string) string { return "" }
func (d *DummyProvider) CloneURL() string           { return "" }
func (d *DummyProvider) RepositoryURL() string      { return "" }

func (d *DummyProvider) Branches(_ context.Context) ([]domain.BranchInfo, error) {
	return nil, nil
}

func (d *DummyProvider) Tags(_ context.Context) ([]domain.TagInfo, error) {
	return nil, nil
}

func (d *DummyProvider) ReadContent(_ context.Context, _ string) ([]byte, error) {
	return nil, nil
}
