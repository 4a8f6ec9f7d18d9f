package domain

import "fmt"

// ConfigError reports a provider configuration that cannot produce a working
// provider instance, e.g. an unknown platform identifier. It is fatal to
// construction and never retried.
type ConfigError struct {
	Platform string
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid provider config for %q: %s", e.Platform, e.Reason)
}

// FetchError reports a non-success HTTP status from a listing or content call.
// The memoization layer never caches a failed attempt, so the next call retries
// the full fetch.
type FetchError struct {
	Status int
	URL    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Status)
}

// ContentNotFoundError reports that a file is absent remotely, or that the
// platform's content envelope carried no content field. Distinct from
// FetchError so callers can tell "file missing" from "repository unreachable".
type ContentNotFoundError struct {
	Path string
	URL  string
}

func (e *ContentNotFoundError) Error() string {
	return fmt.Sprintf("no content found for %q at %s", e.Path, e.URL)
}

// PaginationError reports a malformed or unparseable pagination cursor.
// The aggregate fetch aborts and partial pages are discarded.
type PaginationError struct {
	URL    string
	Reason string
}

func (e *PaginationError) Error() string {
	return fmt.Sprintf("pagination failed at %s: %s", e.URL, e.Reason)
}
