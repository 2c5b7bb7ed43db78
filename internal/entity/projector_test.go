// internal/entity/projector_test.go
//
// Unit-tests for the generic projector using sqlmock.
//
// Run: go test ./internal/entity -v

package entity

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestProject(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT nid, type, title, status, created, changed FROM node_field_data WHERE nid = ? LIMIT 1`,
	)).
		WithArgs(uint64(200)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"nid", "type", "title", "status", "created", "changed"}).
			AddRow(200, "microsite_content", "About", 1, 1600000000, 1700000000))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT field_summary_value FROM node__field_summary WHERE entity_id = ? AND deleted = 0 LIMIT 1`,
	)).
		WithArgs(uint64(200)).
		WillReturnRows(sqlmock.NewRows([]string{"field_summary_value"}).AddRow("<p>S</p>"))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT field_featured_pages_target_id FROM node__field_featured_pages WHERE entity_id = ? AND deleted = 0 ORDER BY delta`,
	)).
		WithArgs(uint64(200)).
		WillReturnRows(sqlmock.NewRows([]string{"field_featured_pages_target_id"}).
			AddRow("901").AddRow("902"))

	specs := []FieldSpec{
		{Name: "summary", Table: "node__field_summary", Column: "field_summary_value"},
		{Name: "featured", Table: "node__field_featured_pages",
			Column: "field_featured_pages_target_id", Repeatable: true},
	}

	rec, err := Project(context.Background(), db, 200, specs)
	if err != nil {
		t.Fatalf("Project error: %v", err)
	}
	if rec == nil {
		t.Fatal("Project returned nil record")
	}
	if rec.Title != "About" || !rec.Published {
		t.Fatalf("base row mismatch: %+v", rec)
	}
	if v, ok := rec.Value("summary"); !ok || v != "<p>S</p>" {
		t.Fatalf("summary = %q, ok = %v", v, ok)
	}
	if got := rec.Values("featured"); len(got) != 2 || got[0] != "901" || got[1] != "902" {
		t.Fatalf("featured = %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestProject_MissingNode(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT nid, type, title, status, created, changed FROM node_field_data WHERE nid = ? LIMIT 1`,
	)).
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"nid", "type", "title", "status", "created", "changed"}))

	rec, err := Project(context.Background(), db, 999, nil)
	if err != nil {
		t.Fatalf("Project error: %v", err)
	}
	if rec != nil {
		t.Fatalf("want nil record for missing node, got %+v", rec)
	}
}

func TestProject_AbsentField(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT nid, type, title, status, created, changed FROM node_field_data WHERE nid = ? LIMIT 1`,
	)).
		WithArgs(uint64(300)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"nid", "type", "title", "status", "created", "changed"}).
			AddRow(300, "microsite_content", "Contact", 0, 0, 0))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT body_value FROM node__body WHERE entity_id = ? AND deleted = 0 LIMIT 1`,
	)).
		WithArgs(uint64(300)).
		WillReturnRows(sqlmock.NewRows([]string{"body_value"}))

	rec, err := Project(context.Background(), db, 300, []FieldSpec{
		{Name: "body", Table: "node__body", Column: "body_value"},
	})
	if err != nil {
		t.Fatalf("Project error: %v", err)
	}
	if rec.Published {
		t.Fatal("status 0 should project as unpublished")
	}
	if _, ok := rec.Value("body"); ok {
		t.Fatal("absent field should report ok = false")
	}
}
