package domain

import "context"

// Provider abstracts a Git hosting service (GitHub, GitLab, Azure DevOps, etc.)
// behind a single repository-metadata contract. Each implementation encodes only
// its platform's URL templates, pagination cursor convention, record field paths,
// and content encoding; callers stay unaware of all four.
//
// Implementations are safe for concurrent use: listing results are memoized per
// instance, so repeated or concurrent Branches/Tags calls issue at most one
// underlying fetch. A failed call caches nothing and the next call refetches.
type Provider interface {
	// Name returns the platform identifier (e.g. "github", "azuredevops").
	Name() string

	// EndpointURL returns the REST root for this project on the platform.
	EndpointURL() string

	// ContentURL returns the URL that serves the content of the file at path
	// on the default branch. The path is URL-encoded as the platform requires.
	ContentURL(path string) string

	// CloneURL returns a URL usable for a git clone of the repository.
	CloneURL() string

	// RepositoryURL returns the human-facing web URL of the repository.
	RepositoryURL() string

	// Branches lists all branches, following pagination to the end.
	// The order is page-fetch order, then within-page order.
	Branches(ctx context.Context) ([]BranchInfo, error)

	// Tags lists all tags, following pagination to the end.
	Tags(ctx context.Context) ([]TagInfo, error)

	// ReadContent fetches and decodes the content of the file at path on the
	// default branch. Returns a ContentNotFoundError when the file is absent
	// or the platform response carries no content.
	ReadContent(ctx context.Context, path string) ([]byte, error)
}
