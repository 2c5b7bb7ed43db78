// internal/microsite/menu.go
//
// Menu-tree walking (page discovery).
//
// Context
// -------
// Microsite pages come in several node types, and their field_club back
// references are unreliable—some page types never had the field, others
// point at the wrong club after content moves.  Every public page is,
// however, deliberately placed under its homepage in the "microsites" menu,
// so menu parentage is the ground truth for which pages belong to a site.
//
// A menu link's parent column stores "menu_link_content:<uuid>" of another
// link, so discovery is two steps: derive the homepage's reference from its
// link row, then select all enabled links whose parent equals it.  Only one
// level of descent is needed; microsite menus are flat below the homepage.
//
// Notes
// -----
// • uuid is VARBINARY under utf8mb4_bin collation, hence the CAST.
// • A homepage absent from the menu is legal: the microsite is just its
//   homepage page.
// • Oxford commas, two spaces after periods.
package microsite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// menuName is the namespace all microsite navigation lives in.
const menuName = "microsites"

// MenuEntry is one enabled link in the microsites menu, paired with its
// target node.
type MenuEntry struct {
	ID     uint64 `db:"id"`
	NID    uint64 `db:"nid"`
	Title  string `db:"title"`
	Weight int32  `db:"weight"`
	Parent string `db:"parent"`
}

// homepageMenuReference returns the "menu_link_content:<uuid>" reference of
// the homepage's own menu link, or "" when the homepage is not in the menu.
func homepageMenuReference(ctx context.Context, db *sqlx.DB, homepageNID uint64) (string, error) {
	const q = `
        SELECT CAST(mlc.uuid AS CHAR(36))
        FROM   menu_link_content mlc
        JOIN   menu_link_content_data mld ON mld.id = mlc.id
        WHERE  mld.link__uri = CONCAT('entity:node/', ?)
          AND  mld.menu_name = ?
        LIMIT  1`

	var uuid string
	if err := db.GetContext(ctx, &uuid, q, homepageNID, menuName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return "menu_link_content:" + uuid, nil
}

// childrenOf returns the enabled links directly under parentRef, ordered by
// weight then target title.  Weight wins over discovery order.
func childrenOf(ctx context.Context, db *sqlx.DB, parentRef string) ([]MenuEntry, error) {
	const q = `
        SELECT mld.id, n.nid, mld.title, mld.weight, mld.parent
        FROM   menu_link_content_data mld
        JOIN   node_field_data n ON mld.link__uri = CONCAT('entity:node/', n.nid)
        WHERE  mld.menu_name = ?
          AND  mld.parent = ?
          AND  mld.enabled = 1
        ORDER BY mld.weight, n.title`

	var rows []MenuEntry
	if err := db.SelectContext(ctx, &rows, q, menuName, parentRef); err != nil {
		return nil, err
	}
	return rows, nil
}

// menuEntryFor returns the menu row targeting one node, or nil when the node
// has no entry.  Used to attach menu metadata to the homepage page, whose
// link is found by target rather than by parent.
func menuEntryFor(ctx context.Context, db *sqlx.DB, nid uint64) (*MenuEntry, error) {
	const q = `
        SELECT mld.id, ? AS nid, mld.title, mld.weight, mld.parent
        FROM   menu_link_content_data mld
        WHERE  mld.link__uri = CONCAT('entity:node/', ?)
          AND  mld.menu_name = ?
        LIMIT  1`

	var entry MenuEntry
	if err := db.GetContext(ctx, &entry, q, nid, nid, menuName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
