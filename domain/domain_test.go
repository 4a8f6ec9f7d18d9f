package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/gitmeta/domain"
	testdoubles "github.com/rios0rios0/gitmeta/test"
)

func TestNewProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		id            string
		expectedOwner string
		expectedName  string
	}{
		{
			name:          "should split owner and repo on single delimiter",
			id:            "quantrocode/slamseq",
			expectedOwner: "quantrocode",
			expectedName:  "slamseq",
		},
		{
			name:          "should take first and last segments on multiple delimiters",
			id:            "org/project/repo",
			expectedOwner: "org",
			expectedName:  "repo",
		},
		{
			name:          "should use the whole id when no delimiter is present",
			id:            "standalone",
			expectedOwner: "standalone",
			expectedName:  "standalone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			project := domain.NewProject(tt.id)

			// then
			assert.Equal(t, tt.id, project.ID)
			assert.Equal(t, tt.expectedOwner, project.Owner)
			assert.Equal(t, tt.expectedName, project.Name)
		})
	}
}

func TestInterfaceCompliance(t *testing.T) {
	t.Parallel()

	t.Run("should satisfy Provider interface with a dummy", func(t *testing.T) {
		t.Parallel()

		// given
		var provider domain.Provider = &testdoubles.DummyProvider{}

		// then
		assert.NotNil(t, provider)
		assert.Implements(t, (*domain.Provider)(nil), provider)
	})

	t.Run("should satisfy Provider interface with a spy", func(t *testing.T) {
		t.Parallel()

		// given
		var provider domain.Provider = &testdoubles.SpyProvider{ProviderName: "github"}

		// then
		assert.NotNil(t, provider)
		assert.Equal(t, "github", provider.Name())
	})
}

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	t.Run("should distinguish FetchError from ContentNotFoundError", func(t *testing.T) {
		t.Parallel()

		// given
		var err error = &domain.FetchError{Status: 502, URL: "https://api.example.com/refs"}

		// when
		var fetchErr *domain.FetchError
		var notFoundErr *domain.ContentNotFoundError

		// then
		assert.True(t, errors.As(err, &fetchErr))
		assert.False(t, errors.As(err, &notFoundErr))
		assert.Equal(t, 502, fetchErr.Status)
	})

	t.Run("should render status and url in FetchError message", func(t *testing.T) {
		t.Parallel()

		// given
		err := &domain.FetchError{Status: 404, URL: "https://api.example.com/x"}

		// then
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "https://api.example.com/x")
	})

	t.Run("should render platform in ConfigError message", func(t *testing.T) {
		t.Parallel()

		// given
		err := &domain.ConfigError{Platform: "sourcehut", Reason: "unknown platform"}

		// then
		assert.Contains(t, err.Error(), "sourcehut")
		assert.Contains(t, err.Error(), "unknown platform")
	})

	t.Run("should render cursor reason in PaginationError message", func(t *testing.T) {
		t.Parallel()

		// given
		err := &domain.PaginationError{URL: "https://api.example.com/tags?page=2", Reason: "next page is not numeric"}

		// then
		assert.Contains(t, err.Error(), "not numeric")
	})
}
