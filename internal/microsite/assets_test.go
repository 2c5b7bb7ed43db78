// internal/microsite/assets_test.go
//
// Unit-tests for media-path extraction and the homepage asset lookups.

package microsite

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMediaPaths(t *testing.T) {
	html := `
        <img src="/sites/default/files/images/photo.jpg">
        <a href="/sites/default/files/docs/manual.pdf">Download</a>
        <img src='/sites/default/files/images/photo.jpg'>
        <img src="https://example.com/external.jpg">
    `

	got := ExtractMediaPaths(html)
	require.Len(t, got, 3)
	assert.Equal(t, "/sites/default/files/images/photo.jpg", got[0])
	assert.Equal(t, "/sites/default/files/docs/manual.pdf", got[1])
	// duplicates are kept in order of appearance
	assert.Equal(t, got[0], got[2])

	// every match is a substring of the input containing the prefix
	for _, p := range got {
		assert.True(t, strings.Contains(html, p))
		assert.Contains(t, p, "/sites/default/files/")
	}

	// idempotent
	assert.Equal(t, got, ExtractMediaPaths(html))
}

func TestExtractMediaPaths_None(t *testing.T) {
	assert.Nil(t, ExtractMediaPaths("<p>No media here</p>"))
}

func TestResolveHomepageAssets(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`node__field_desktop_banner_image`).
		WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"uri"}).AddRow("public://2024-01/banner.jpg"))

	mock.ExpectQuery(`media__field_club`).
		WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"uri"})) // no logo uploaded

	mock.ExpectQuery(`facebook\.com`).
		WithArgs(uint64(100), uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"url"}).
			AddRow("https://www.facebook.com/groups/airstream"))

	assets, err := ResolveHomepageAssets(context.Background(), db, 100)
	require.NoError(t, err)
	require.NotNil(t, assets.BannerImage)
	assert.Equal(t, "public://2024-01/banner.jpg", *assets.BannerImage)
	assert.Nil(t, assets.LogoImage)
	require.NotNil(t, assets.FacebookURL)
	assert.Equal(t, "https://www.facebook.com/groups/airstream", *assets.FacebookURL)

	require.NoError(t, mock.ExpectationsWereMet())
}
