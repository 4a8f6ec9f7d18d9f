package rest

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/rios0rios0/gitmeta/domain"
)

// Pager derives the URL of the next page from the page just fetched.
// An empty URL means the listing is exhausted. A malformed cursor yields a
// domain.PaginationError, which aborts the whole aggregate fetch.
type Pager interface {
	Next(resp *Response) (string, error)
}

// SinglePage is a Pager for endpoints that never paginate.
type SinglePage struct{}

func (SinglePage) Next(_ *Response) (string, error) { return "", nil }

// LinkPager follows the RFC 5988 Link response header (GitHub, Gitea):
//
//	Link: <https://api.github.com/...&page=2>; rel="next", <...>; rel="last"
type LinkPager struct{}

func (LinkPager) Next(resp *Response) (string, error) {
	header := resp.Header.Get("Link")
	if header == "" {
		return "", nil
	}

	for _, segment := range strings.Split(header, ",") {
		parts := strings.Split(segment, ";")
		if len(parts) < 2 {
			continue
		}
		if !linkRelIsNext(parts[1:]) {
			continue
		}

		target := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			return "", &domain.PaginationError{
				URL:    resp.URL,
				Reason: "Link header target is not enclosed in angle brackets",
			}
		}
		next := strings.Trim(target, "<>")
		if _, err := url.ParseRequestURI(next); err != nil {
			return "", &domain.PaginationError{
				URL:    resp.URL,
				Reason: "Link header target is not a valid URL: " + next,
			}
		}
		return next, nil
	}

	return "", nil
}

func linkRelIsNext(params []string) bool {
	for _, param := range params {
		if strings.TrimSpace(param) == `rel="next"` {
			return true
		}
	}
	return false
}

// PageNumberPager follows a numeric page cursor carried in a response header
// and re-applies it as a query parameter (GitLab: x-next-page -> page).
type PageNumberPager struct {
	Header string
	Param  string
}

func (p PageNumberPager) Next(resp *Response) (string, error) {
	cursor := resp.Header.Get(p.Header)
	if cursor == "" {
		return "", nil
	}
	if _, err := strconv.Atoi(cursor); err != nil {
		return "", &domain.PaginationError{
			URL:    resp.URL,
			Reason: "next page is not numeric: " + cursor,
		}
	}
	return withQueryParam(resp.URL, p.Param, cursor)
}

// TokenPager follows an opaque continuation token carried in a response header
// and re-applies it as a query parameter (Azure DevOps: x-ms-continuationtoken
// -> continuationToken). The token is never interpreted.
type TokenPager struct {
	Header string
	Param  string
}

func (p TokenPager) Next(resp *Response) (string, error) {
	cursor := resp.Header.Get(p.Header)
	if cursor == "" {
		return "", nil
	}
	return withQueryParam(resp.URL, p.Param, cursor)
}

// BodyPager follows an absolute next-page URL embedded in the response body
// (Bitbucket: the "next" field alongside "values").
type BodyPager struct {
	Field string
}

func (p BodyPager) Next(resp *Response) (string, error) {
	next := gjson.GetBytes(resp.Body, p.Field)
	if !next.Exists() || next.Str == "" {
		return "", nil
	}
	parsed, err := url.ParseRequestURI(next.Str)
	if err != nil || !parsed.IsAbs() {
		return "", &domain.PaginationError{
			URL:    resp.URL,
			Reason: "next link in body is not an absolute URL: " + next.Str,
		}
	}
	return next.Str, nil
}

// withQueryParam replaces one query parameter on the current page's URL,
// keeping every other parameter intact.
func withQueryParam(rawURL, param, value string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", &domain.PaginationError{URL: rawURL, Reason: "current page URL is unparseable"}
	}
	query := parsed.Query()
	query.Set(param, value)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
