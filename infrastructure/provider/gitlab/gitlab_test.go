package gitlab //nolint:testpackage // tests unexported functions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitmeta/domain"
)

func TestGitLabProvider(t *testing.T) {
	t.Parallel()

	t.Run("Name", func(t *testing.T) {
		t.Parallel()

		t.Run("should return gitlab", func(t *testing.T) {
			t.Parallel()

			// given
			p := New(domain.ProviderConfig{Platform: "gitlab"}, "group/project")

			// when
			name := p.Name()

			// then
			assert.Equal(t, "gitlab", name)
		})
	})

	t.Run("URLs", func(t *testing.T) {
		t.Parallel()

		t.Run("should path-escape the project id in the endpoint", func(t *testing.T) {
			t.Parallel()

			// given
			p := New(domain.ProviderConfig{Platform: "gitlab"}, "group/project")

			// then
			assert.Equal(
				t,
				"https://gitlab.com/api/v4/projects/group%2Fproject",
				p.EndpointURL(),
			)
			assert.Equal(t, "https://gitlab.com/group/project.git", p.CloneURL())
			assert.Equal(t, "https://gitlab.com/group/project", p.RepositoryURL())
		})

		t.Run("should path-escape the file path in the content url", func(t *testing.T) {
			t.Parallel()

			// given
			p := New(domain.ProviderConfig{Platform: "gitlab"}, "group/project")

			// when
			contentURL := p.ContentURL("conf/base.config")

			// then
			assert.Equal(
				t,
				"https://gitlab.com/api/v4/projects/group%2Fproject/repository/files/conf%2Fbase.config?ref=HEAD",
				contentURL,
			)
		})
	})

	t.Run("Branches", func(t *testing.T) {
		t.Parallel()

		t.Run("should send the private token and follow the next-page header", func(t *testing.T) {
			t.Parallel()

			// given
			var received string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				received = r.Header.Get("PRIVATE-TOKEN")
				if r.URL.Query().Get("page") == "2" {
					fmt.Fprint(w, `[{"name":"dev","commit":{"id":"def"}}]`)
					return
				}
				w.Header().Set("x-next-page", "2")
				fmt.Fprint(w, `[{"name":"main","commit":{"id":"abc"}}]`)
			}))
			defer server.Close()
			cfg := domain.ProviderConfig{Platform: "gitlab", Endpoint: server.URL, Token: "glpat-secret"}
			p := New(cfg, "group/project")

			// when
			branches, err := p.Branches(context.Background())

			// then
			require.NoError(t, err)
			assert.Equal(t, "glpat-secret", received)
			assert.Equal(t, []domain.BranchInfo{
				{Name: "main", CommitID: "abc"},
				{Name: "dev", CommitID: "def"},
			}, branches)
		})

		t.Run("should not cache a failed listing and refetch on the next call", func(t *testing.T) {
			t.Parallel()

			// given
			var requests atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if requests.Add(1) == 1 {
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				fmt.Fprint(w, `[{"name":"main","commit":{"id":"abc"}}]`)
			}))
			defer server.Close()
			p := New(domain.ProviderConfig{Platform: "gitlab", Endpoint: server.URL}, "group/project")

			// when
			_, err1 := p.Branches(context.Background())
			branches, err2 := p.Branches(context.Background())

			// then
			var fetchErr *domain.FetchError
			require.ErrorAs(t, err1, &fetchErr)
			require.NoError(t, err2)
			assert.Equal(t, []domain.BranchInfo{{Name: "main", CommitID: "abc"}}, branches)
			assert.Equal(t, int32(2), requests.Load())
		})
	})

	t.Run("Tags", func(t *testing.T) {
		t.Parallel()

		t.Run("should extract name and commit id", func(t *testing.T) {
			t.Parallel()

			// given
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `[{"name":"v2.1.0","commit":{"id":"fedcba"}}]`)
			}))
			defer server.Close()
			p := New(domain.ProviderConfig{Platform: "gitlab", Endpoint: server.URL}, "group/project")

			// when
			tags, err := p.Tags(context.Background())

			// then
			require.NoError(t, err)
			assert.Equal(t, []domain.TagInfo{{Name: "v2.1.0", CommitID: "fedcba"}}, tags)
		})
	})

	t.Run("ReadContent", func(t *testing.T) {
		t.Parallel()

		t.Run("should decode the Base64 file envelope", func(t *testing.T) {
			t.Parallel()

			// given
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"file_name":"main.nf","content":"bWFuaWZlc3Qgewp9Cg==","encoding":"base64"}`)
			}))
			defer server.Close()
			p := New(domain.ProviderConfig{Platform: "gitlab", Endpoint: server.URL}, "group/project")

			// when
			content, err := p.ReadContent(context.Background(), "main.nf")

			// then
			require.NoError(t, err)
			assert.Equal(t, "manifest {\n}\n", string(content))
		})

		t.Run("should return ContentNotFoundError on 404", func(t *testing.T) {
			t.Parallel()

			// given
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()
			p := New(domain.ProviderConfig{Platform: "gitlab", Endpoint: server.URL}, "group/project")

			// when
			_, err := p.ReadContent(context.Background(), "missing.config")

			// then
			var notFoundErr *domain.ContentNotFoundError
			require.ErrorAs(t, err, &notFoundErr)
		})
	})
}
