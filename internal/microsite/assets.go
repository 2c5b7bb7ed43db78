// internal/microsite/assets.go
//
// Media-path extraction and homepage asset lookups.
//
// Context
// -------
// Exported page bodies reference files under /sites/default/files/ that the
// downstream migration must download, so ExtractMediaPaths scans final HTML
// for src/href attributes containing that prefix and returns them in order
// of appearance.  Duplicates are kept; the download manifest dedupes.
//
// ResolveHomepageAssets handles the three homepage-level assets that live
// outside page bodies, each with its own heuristic:
//
//   • banner   – the field_desktop_banner_image media chain, first match.
//   • logo     – media tagged with the club whose name contains "logo",
//                oldest upload first (lowest mid).
//   • facebook – a facebook.com URL, preferring the social-media paragraph
//                over the homepage's generic button field.
//
// Notes
// -----
// • file_managed.uri carries utf8mb4_bin collation, which the driver hands
//   back as raw bytes; the CAST keeps scans as strings.
// • Oxford commas, two spaces after periods.
package microsite

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/jmoiron/sqlx"
)

// mediaPathRe matches quoted src/href values that point into the public
// files tree.  Non-greedy before the prefix so a value containing two quoted
// attributes never over-matches; single and double quotes both accepted.
var mediaPathRe = regexp.MustCompile(
	`(?:src|href)=["']([^"']*?/sites/default/files/[^"']+)["']`)

// ExtractMediaPaths returns every public-files path referenced by html, in
// order of appearance, duplicates included.
func ExtractMediaPaths(html string) []string {
	matches := mediaPathRe.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return nil
	}
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, m[1])
	}
	return paths
}

// HomepageAssets are the homepage-level files and links that sit outside
// page bodies.  All three are independently optional.
type HomepageAssets struct {
	BannerImage *string `json:"banner_image,omitempty"`
	LogoImage   *string `json:"logo_image,omitempty"`
	FacebookURL *string `json:"facebook_url,omitempty"`
}

// ResolveHomepageAssets runs the three single-purpose lookups for one
// homepage.  Missing assets are absent, never errors.
func ResolveHomepageAssets(ctx context.Context, db *sqlx.DB, homepageNID uint64) (HomepageAssets, error) {
	var assets HomepageAssets

	banner, err := mediaImageURI(ctx, db,
		"node__field_desktop_banner_image", "field_desktop_banner_image_target_id", homepageNID)
	if err != nil {
		return assets, err
	}
	assets.BannerImage = banner

	logo, err := clubLogoURI(ctx, db, homepageNID)
	if err != nil {
		return assets, err
	}
	assets.LogoImage = logo

	fb, err := facebookURL(ctx, db, homepageNID)
	if err != nil {
		return assets, err
	}
	assets.FacebookURL = fb

	return assets, nil
}

// mediaImageURI walks refTable → media → file for one node and returns the
// first stored file URI.  Shared by the banner lookup and the hero and
// navigation images on pages.
func mediaImageURI(ctx context.Context, db *sqlx.DB, refTable, refColumn string, nid uint64) (*string, error) {
	// refTable and refColumn come from compile-time constants.
	q := `
        SELECT CAST(f.uri AS CHAR(255))
        FROM   ` + refTable + ` ref
        JOIN   media__field_media_image mfi ON mfi.entity_id = ref.` + refColumn + `
        JOIN   file_managed f ON f.fid = mfi.field_media_image_target_id
        WHERE  ref.entity_id = ?
        LIMIT  1`

	var uri string
	if err := db.GetContext(ctx, &uri, q, nid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &uri, nil
}

// clubLogoURI finds the oldest media upload tagged with this club whose
// display name contains "logo".
func clubLogoURI(ctx context.Context, db *sqlx.DB, homepageNID uint64) (*string, error) {
	const q = `
        SELECT CAST(f.uri AS CHAR(255))
        FROM   media__field_club mfc
        JOIN   media_field_data m ON m.mid = mfc.entity_id
        JOIN   media__field_media_image mfi ON mfi.entity_id = m.mid
        JOIN   file_managed f ON f.fid = mfi.field_media_image_target_id
        WHERE  mfc.field_club_target_id = ?
          AND  m.name LIKE '%logo%'
        ORDER BY m.mid
        LIMIT  1`

	var uri string
	if err := db.GetContext(ctx, &uri, q, homepageNID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &uri, nil
}

// facebookURL prefers the social-media paragraph link, falling back to the
// homepage's button field; either must contain facebook.com.
func facebookURL(ctx context.Context, db *sqlx.DB, homepageNID uint64) (*string, error) {
	const q = `
        SELECT url FROM (
            SELECT sml.field_social_media_link_uri AS url
            FROM   node__field_social_media_new smn
            JOIN   paragraph__field_social_media_link sml
                   ON sml.entity_id = smn.field_social_media_new_target_id
            WHERE  smn.entity_id = ?
              AND  sml.field_social_media_link_uri LIKE '%facebook.com%'
            LIMIT  1
        ) social
        UNION
        SELECT url FROM (
            SELECT field_button_uri AS url
            FROM   node__field_button
            WHERE  entity_id = ?
              AND  field_button_uri LIKE '%facebook.com%'
            LIMIT  1
        ) button
        LIMIT 1`

	var url string
	if err := db.GetContext(ctx, &url, q, homepageNID, homepageNID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &url, nil
}
