// internal/roster/brns.go
//
// BRN (Big Red Number) export from the `v_brns` view.
//
// The view hands back one row per user with a comma-separated list of
// numbers; the export wants one record per user/number pair, so the
// expansion happens here.  Rows with non-positive user ids are service
// accounts and are dropped.
package roster

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

// BRN is one user/number pair.
type BRN struct {
	UserUID uint64 `json:"user_uid"`
	Number  string `json:"number"`
}

type brnRow struct {
	UserID     int32  `db:"user_id"`
	BRNsValues string `db:"brns_values"`
}

// AllBRNs expands the view's comma-separated values into individual records.
func AllBRNs(ctx context.Context, db *sqlx.DB) ([]BRN, error) {
	var rows []brnRow
	if err := db.SelectContext(ctx, &rows,
		`SELECT user_id, brns_values FROM v_brns`); err != nil {
		return nil, err
	}

	var brns []BRN
	for _, row := range rows {
		if row.UserID <= 0 {
			continue
		}
		for _, num := range strings.Split(row.BRNsValues, ",") {
			num = strings.TrimSpace(num)
			if num == "" {
				continue
			}
			brns = append(brns, BRN{UserUID: uint64(row.UserID), Number: num})
		}
	}
	return brns, nil
}
