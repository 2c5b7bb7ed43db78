// internal/microsite/fragment.go
//
// Featured-pages paragraph rendering (the Embedded-Fragment Renderer).
//
// Context
// -------
// Some pages keep their content in field_featured_pages paragraphs instead
// of (or in addition to) the body fields.  Each paragraph is a loose group
// of optional parts—headline, text block, button, image—stored in its own
// side tables and ordered by the reference field's delta.  The export
// flattens each paragraph into plain markup appended to the page body:
// image first, then headline, text, and button link, skipping absent parts.
//
// The paragraph text is raw editor HTML and is passed through unescaped,
// matching what the CMS rendered.
//
// Notes
// -----
// • The image hangs off the paragraph through the usual media chain:
//   paragraph → field_image → media → field_media_image → file.
// • Oxford commas, two spaces after periods.
package microsite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/ddb/internal/drupal"
)

// fragmentRow is one featured-pages paragraph with every optional part.
type fragmentRow struct {
	Headline    *string `db:"headline"`
	Text        *string `db:"summary_text"`
	ButtonURI   *string `db:"button_uri"`
	ButtonTitle *string `db:"button_title"`
	ImageURI    *string `db:"image_uri"`
}

// fragmentsHTML renders the featured-pages paragraphs of one node into a
// markup fragment.  Returns "" when the node has no paragraphs.
func fragmentsHTML(ctx context.Context, db *sqlx.DB, nid uint64) (string, error) {
	const q = `
        SELECT fh.field_headline_value          AS headline,
               fst.field_summary_text_2_value   AS summary_text,
               pb.field_button_uri              AS button_uri,
               pb.field_button_title            AS button_title,
               CAST(img_file.uri AS CHAR(255))  AS image_uri
        FROM   node__field_featured_pages fp
        LEFT JOIN paragraph__field_headline fh
               ON fh.entity_id = fp.field_featured_pages_target_id
        LEFT JOIN paragraph__field_summary_text_2 fst
               ON fst.entity_id = fp.field_featured_pages_target_id
        LEFT JOIN paragraph__field_button pb
               ON pb.entity_id = fp.field_featured_pages_target_id
        LEFT JOIN paragraph__field_image pimg
               ON pimg.entity_id = fp.field_featured_pages_target_id
        LEFT JOIN media__field_media_image img_mfi
               ON img_mfi.entity_id = pimg.field_image_target_id
        LEFT JOIN file_managed img_file
               ON img_file.fid = img_mfi.field_media_image_target_id
        WHERE  fp.entity_id = ?
        ORDER BY fp.delta`

	var rows []fragmentRow
	if err := db.SelectContext(ctx, &rows, q, nid); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, row := range rows {
		renderFragment(&b, row)
	}
	return b.String(), nil
}

// renderFragment appends one paragraph's parts in display order.
func renderFragment(b *strings.Builder, row fragmentRow) {
	if row.ImageURI != nil {
		if src, ok := drupal.URIToPath(*row.ImageURI); ok {
			fmt.Fprintf(b, "<p><img src=\"%s\" alt=\"\"></p>\n", src)
		}
	}
	if row.Headline != nil {
		fmt.Fprintf(b, "<h3>%s</h3>\n", *row.Headline)
	}
	if row.Text != nil {
		b.WriteString(*row.Text)
		b.WriteByte('\n')
	}
	if row.ButtonURI != nil {
		title := *row.ButtonURI
		if row.ButtonTitle != nil {
			title = *row.ButtonTitle
		}
		fmt.Fprintf(b, "<p><a href=\"%s\">%s</a></p>\n", *row.ButtonURI, title)
	}
}
