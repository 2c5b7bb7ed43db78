// internal/microsite/binding.go
//
// Club → homepage binding (the Title-Match Resolver).
//
// Context
// -------
// Nothing in the CMS links an ssp_club node to its microsite_homepage node
// directly.  In practice the two share a title, so the binding rule is exact
// title equality, UNIONed with a short list of override pairs for clubs whose
// homepage was renamed after launch.  Both sides of an override are still
// checked against their node types, so a stale pair degrades to "no match".
//
// The UNION deliberately returns a list: a club matching several homepages
// (or a homepage matching several clubs) yields one row per pair, and the
// caller decides whether that fan-out is acceptable.  Deduplicating here
// would hide a data-quality problem the operator should see.
//
// Notes
// -----
// • A club with no field_club_number row is an intraclub; the flag is
//   derived in SQL, never stored.
// • Oxford commas, two spaces after periods.
package microsite

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

// OverridePair maps one club node to one homepage node when their titles do
// not match.
type OverridePair struct {
	ClubNID     uint64
	HomepageNID uint64
}

// ClubMicrosite is one club bound to its microsite homepage.
type ClubMicrosite struct {
	ClubNID     uint64 `db:"club_nid"     json:"club_nid"`
	ClubNumber  *int64 `db:"club_number"  json:"club_number,omitempty"`
	ClubName    string `db:"club_name"    json:"club_name"`
	HomepageNID uint64 `db:"homepage_nid" json:"homepage_nid"`
	IsIntraclub bool   `db:"is_intraclub" json:"is_intraclub"`
}

// ClubSlug is the URL slug the CMS serves a club's microsite under.
type ClubSlug struct {
	ClubNID uint64 `db:"club_nid" json:"club_nid"`
	Slug    string `db:"slug"     json:"slug"`
}

const bindingSelect = `
        SELECT club.nid                            AS club_nid,
               cn.field_club_number_value          AS club_number,
               club.title                          AS club_name,
               hp.nid                              AS homepage_nid,
               cn.field_club_number_value IS NULL  AS is_intraclub`

// ClubsWithMicrosites returns every (club, homepage) binding: the title-match
// set plus one row per override pair.  Ordered regular clubs first (by club
// number, then name), intraclubs after.
func ClubsWithMicrosites(ctx context.Context, db *sqlx.DB, overrides []OverridePair) ([]ClubMicrosite, error) {
	q := bindingSelect + `
        FROM   node_field_data hp
        JOIN   node_field_data club ON club.title = hp.title AND club.type = 'ssp_club'
        LEFT JOIN node__field_club_number cn ON cn.entity_id = club.nid
        WHERE  hp.type = 'microsite_homepage'`

	var args []any
	if len(overrides) > 0 {
		q += `

        UNION
` + bindingSelect + `
        FROM   node_field_data club
        JOIN   node_field_data hp ON (club.nid, hp.nid) IN (` + pairPlaceholders(len(overrides)) + `)
        LEFT JOIN node__field_club_number cn ON cn.entity_id = club.nid
        WHERE  club.type = 'ssp_club' AND hp.type = 'microsite_homepage'`
		args = pairArgs(overrides)
	}

	q += `
        ORDER BY is_intraclub, club_number, club_name`

	var rows []ClubMicrosite
	if err := db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// Slugs returns the path_alias slug for each bound club, leading slash
// stripped.  Clubs whose homepage has no alias are absent from the result.
func Slugs(ctx context.Context, db *sqlx.DB, overrides []OverridePair) ([]ClubSlug, error) {
	q := `
        SELECT club.nid AS club_nid, TRIM(LEADING '/' FROM pa.alias) AS slug
        FROM   node_field_data club
        JOIN   node_field_data hp ON hp.title = club.title AND hp.type = 'microsite_homepage'
        JOIN   path_alias pa ON pa.path = CONCAT('/node/', hp.nid)
        WHERE  club.type = 'ssp_club'`

	var args []any
	if len(overrides) > 0 {
		q += `

        UNION

        SELECT club.nid AS club_nid, TRIM(LEADING '/' FROM pa.alias) AS slug
        FROM   node_field_data club
        JOIN   node_field_data hp ON (club.nid, hp.nid) IN (` + pairPlaceholders(len(overrides)) + `)
        JOIN   path_alias pa ON pa.path = CONCAT('/node/', hp.nid)
        WHERE  club.type = 'ssp_club' AND hp.type = 'microsite_homepage'`
		args = pairArgs(overrides)
	}

	var rows []ClubSlug
	if err := db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// pairPlaceholders renders "(?, ?), (?, ?), …" for n override pairs.
func pairPlaceholders(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?)")
	}
	return b.String()
}

func pairArgs(pairs []OverridePair) []any {
	args := make([]any, 0, len(pairs)*2)
	for _, p := range pairs {
		args = append(args, p.ClubNID, p.HomepageNID)
	}
	return args
}
