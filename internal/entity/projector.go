// internal/entity/projector.go
//
// Generic projector over Drupal's entity-attribute-value layout.
//
// Context
// -------
// Drupal stores one base row per node in `node_field_data` and scatters the
// node's attributes across sparse `node__field_*` side tables, one table per
// field, joined by entity_id and guarded by a soft-delete flag.  Writing a
// bespoke join for every caller couples the whole program to that schema, so
// this package accepts a declarative []FieldSpec and assembles one Record
// per entity instead.  Schema knowledge stays in the spec tables the callers
// declare; the projector itself never names a field.
//
// Workflow
// --------
//  1. Fetch the base row.  A missing row is "not found", returned as
//     (nil, nil) so callers can treat absence as data, not failure.
//  2. For each FieldSpec, fetch the undeleted side rows: one LIMIT 1 query
//     for scalar fields, a delta-ordered list for repeatable ones.
//  3. Collect everything into a Record keyed by logical field name.
//
// Notes
// -----
// • Duplicate rows for a scalar field are a known CMS data-quality wart;
//   the projector keeps whichever row the server returns first.
// • Spec tables are compile-time constants, so interpolating Table and
//   Column into SQL text is safe here.
// • Oxford commas, two spaces after periods.
package entity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// FieldSpec declares one per-field side table join.
type FieldSpec struct {
	Name       string // logical field name, e.g. "summary"
	Table      string // side table, e.g. "node__field_summary"
	Column     string // value column or expression, e.g. "field_summary_value"
	Repeatable bool   // one-to-many; values come back ordered by delta
}

// Record is one projected entity: the base row plus the requested fields.
// Field slots for which no undeleted side row exists are simply absent.
type Record struct {
	NID       uint64
	Type      string
	Title     string
	Published bool
	Created   time.Time
	Changed   time.Time

	values map[string][]string
}

// Value returns the first value of a scalar or repeatable field.
func (r *Record) Value(name string) (string, bool) {
	vs := r.values[name]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Values returns all values of a repeatable field in delta order.
func (r *Record) Values(name string) []string {
	return r.values[name]
}

type baseRow struct {
	NID     uint64 `db:"nid"`
	Type    string `db:"type"`
	Title   string `db:"title"`
	Status  int8   `db:"status"`
	Created int64  `db:"created"`
	Changed int64  `db:"changed"`
}

// Project builds a Record for one node.  Returns (nil, nil) when the node
// does not exist; genuine query failures abort with the error.
func Project(ctx context.Context, db *sqlx.DB, nid uint64, specs []FieldSpec) (*Record, error) {
	const baseQ = `
        SELECT nid, type, title, status, created, changed
        FROM   node_field_data
        WHERE  nid = ?
        LIMIT  1`

	var base baseRow
	if err := db.GetContext(ctx, &base, baseQ, nid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("entity %d: base row: %w", nid, err)
	}

	rec := &Record{
		NID:       base.NID,
		Type:      base.Type,
		Title:     base.Title,
		Published: base.Status == 1,
		Created:   time.Unix(base.Created, 0).UTC(),
		Changed:   time.Unix(base.Changed, 0).UTC(),
		values:    make(map[string][]string, len(specs)),
	}

	for _, spec := range specs {
		vals, err := fieldValues(ctx, db, nid, spec)
		if err != nil {
			return nil, fmt.Errorf("entity %d: field %s: %w", nid, spec.Name, err)
		}
		if len(vals) > 0 {
			rec.values[spec.Name] = vals
		}
	}
	return rec, nil
}

// fieldValues fetches the undeleted side rows for one spec.
func fieldValues(ctx context.Context, db *sqlx.DB, nid uint64, spec FieldSpec) ([]string, error) {
	q := `SELECT ` + spec.Column + ` FROM ` + spec.Table + ` WHERE entity_id = ? AND deleted = 0`
	if spec.Repeatable {
		q += ` ORDER BY delta`
	} else {
		q += ` LIMIT 1`
	}

	var raw []sql.NullString
	if err := db.SelectContext(ctx, &raw, q, nid); err != nil {
		return nil, err
	}

	vals := make([]string, 0, len(raw))
	for _, v := range raw {
		if v.Valid {
			vals = append(vals, v.String)
		}
	}
	return vals, nil
}
