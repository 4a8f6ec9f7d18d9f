package domain

import "strings"

// ProviderConfig holds the connection settings for one hosting platform.
// Values are fixed at construction; a provider instance never mutates them.
type ProviderConfig struct {
	Platform string // "github", "gitlab", "azuredevops", "bitbucket", "gitea"
	Server   string // Human-facing web root (e.g. https://github.com)
	Endpoint string // REST API root (e.g. https://api.github.com)
	Token    string // Opaque auth token; empty for anonymous access
}

// Project identifies a repository on a hosting platform. Owner and Name are
// derived from ID once at construction: Owner is the segment before the first
// "/", Name the segment after the last "/". An ID without a delimiter yields
// Owner == Name == ID.
type Project struct {
	ID    string
	Owner string
	Name  string
}

// NewProject derives a Project from a raw identifier like "owner/repo" or
// "org/project/repo".
func NewProject(id string) Project {
	project := Project{ID: id, Owner: id, Name: id}
	if idx := strings.Index(id, "/"); idx >= 0 {
		project.Owner = id[:idx]
		project.Name = id[strings.LastIndex(id, "/")+1:]
	}
	return project
}

// BranchInfo is a branch name paired with the commit it points at.
// CommitID is empty when the platform omits it.
type BranchInfo struct {
	Name     string
	CommitID string
}

// TagInfo is a tag name paired with the commit it points at.
type TagInfo struct {
	Name     string
	CommitID string
}
