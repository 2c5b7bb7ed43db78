// internal/microsite/resolver_test.go
//
// End-to-end resolution tests over a mocked Drupal store.
//
// Context
// -------
// These tests walk the whole per-club chain—projection, menu discovery,
// fusion, fragments, assets, slug—against sqlmock in strict query order, so
// they double as documentation of the queries one resolution issues.

package microsite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
)

var baseCols = []string{"nid", "type", "title", "status", "created", "changed"}

// expectPage queues the projection, media, and fragment queries one page
// build issues.  menuLookup is true only for the homepage, whose menu entry
// is found by target rather than supplied by the parent walk.
func expectPage(mock sqlmock.Sqlmock, nid uint64, title, summary string, menuLookup bool) {
	mock.ExpectQuery(`FROM node_field_data WHERE nid`).
		WithArgs(nid).
		WillReturnRows(sqlmock.NewRows(baseCols).
			AddRow(nid, "microsite_content", title, 1, 1600000000, 1700000000))

	mock.ExpectQuery(`node__field_page_title`).WithArgs(nid).
		WillReturnRows(sqlmock.NewRows([]string{"v"}))

	summaryRows := sqlmock.NewRows([]string{"v"})
	if summary != "" {
		summaryRows.AddRow(summary)
	}
	mock.ExpectQuery(`node__field_summary`).WithArgs(nid).WillReturnRows(summaryRows)

	mock.ExpectQuery(`FROM node__body`).WithArgs(nid).
		WillReturnRows(sqlmock.NewRows([]string{"v"}))
	mock.ExpectQuery(`FROM node__field_body`).WithArgs(nid).
		WillReturnRows(sqlmock.NewRows([]string{"v"}))

	if menuLookup {
		mock.ExpectQuery(`AS nid`).WithArgs(nid, nid, menuName).
			WillReturnRows(sqlmock.NewRows([]string{"id", "nid", "title", "weight", "parent"}).
				AddRow(1, nid, title, 0, ""))
	}

	mock.ExpectQuery(`node__field_hero_banner_image`).WithArgs(nid).
		WillReturnRows(sqlmock.NewRows([]string{"uri"}))
	mock.ExpectQuery(`node__field_navigatio_`).WithArgs(nid).
		WillReturnRows(sqlmock.NewRows([]string{"uri"}))
	mock.ExpectQuery(`node__field_featured_pages`).WithArgs(nid).
		WillReturnRows(sqlmock.NewRows(fragmentCols))
}

func TestResolve_MenuOrderWinsOverDiscovery(t *testing.T) {
	db, mock := newMock(t)

	// Homepage nid=100 with menu reference "m1"; children Contact (300,
	// weight 0) and About (200, weight 1).  Weight must beat nid order.
	expectPage(mock, 100, "Sunset Riders", "<p>Welcome.</p>", true)

	mock.ExpectQuery(`CAST\(mlc\.uuid`).WithArgs(uint64(100), menuName).
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}).AddRow("m1"))

	mock.ExpectQuery(`mld.enabled = 1`).WithArgs(menuName, "menu_link_content:m1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nid", "title", "weight", "parent"}).
			AddRow(7, 300, "Contact", 0, "menu_link_content:m1").
			AddRow(8, 200, "About", 1, "menu_link_content:m1"))

	expectPage(mock, 300, "Contact", "", false)
	expectPage(mock, 200, "About", "", false)

	// Homepage assets: none found.
	mock.ExpectQuery(`node__field_desktop_banner_image`).WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"uri"}))
	mock.ExpectQuery(`media__field_club`).WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"uri"}))
	mock.ExpectQuery(`facebook\.com`).WithArgs(uint64(100), uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"url"}))

	// No path alias: slug falls back to the club name.
	mock.ExpectQuery(`FROM path_alias`).WithArgs("/node/100").
		WillReturnRows(sqlmock.NewRows([]string{"slug"}))

	r := NewResolver(db, nil, 1, zap.NewNop().Sugar())
	club := ClubMicrosite{ClubNID: 10, ClubName: "Sunset Riders", HomepageNID: 100}

	ms, err := r.Resolve(context.Background(), club)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if len(ms.Pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(ms.Pages))
	}
	wantOrder := []uint64{100, 300, 200}
	for i, nid := range wantOrder {
		if ms.Pages[i].NID != nid {
			t.Fatalf("page order = [%d %d %d], want %v",
				ms.Pages[0].NID, ms.Pages[1].NID, ms.Pages[2].NID, wantOrder)
		}
	}

	if ms.Slug != "sunset-riders" {
		t.Fatalf("slug fallback = %q", ms.Slug)
	}
	if ms.Pages[0].Path != "/sunset-riders" {
		t.Fatalf("homepage path = %q", ms.Pages[0].Path)
	}
	if ms.Pages[1].Path != "/sunset-riders/contact" {
		t.Fatalf("child path = %q", ms.Pages[1].Path)
	}
	if ms.Pages[0].BodyHTML != "<p>Welcome.</p>" {
		t.Fatalf("homepage body = %q", ms.Pages[0].BodyHTML)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestPages_HomepageOutsideMenu(t *testing.T) {
	db, mock := newMock(t)

	// A homepage with no menu entry still yields its own page and no
	// children.
	mock.ExpectQuery(`FROM node_field_data WHERE nid`).
		WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows(baseCols).
			AddRow(100, "microsite_homepage", "Lone Star", 1, 0, 0))
	mock.ExpectQuery(`node__field_page_title`).WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"v"}))
	mock.ExpectQuery(`node__field_summary`).WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"v"}))
	mock.ExpectQuery(`FROM node__body`).WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("<p>B</p>"))
	mock.ExpectQuery(`FROM node__field_body`).WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"v"}))
	mock.ExpectQuery(`AS nid`).WithArgs(uint64(100), uint64(100), menuName).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nid", "title", "weight", "parent"}))
	mock.ExpectQuery(`node__field_hero_banner_image`).WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"uri"}))
	mock.ExpectQuery(`node__field_navigatio_`).WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"uri"}))
	mock.ExpectQuery(`node__field_featured_pages`).WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows(fragmentCols))

	mock.ExpectQuery(`CAST\(mlc\.uuid`).WithArgs(uint64(100), menuName).
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}))

	r := NewResolver(db, nil, 1, zap.NewNop().Sugar())
	pages, err := r.Pages(context.Background(), 100)
	if err != nil {
		t.Fatalf("Pages error: %v", err)
	}
	if len(pages) != 1 || pages[0].NID != 100 {
		t.Fatalf("unexpected pages: %#v", pages)
	}
	if pages[0].MenuID != nil {
		t.Fatal("homepage outside menu must carry no menu metadata")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestPages_MissingHomepageNode(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`FROM node_field_data WHERE nid`).
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows(baseCols))
	mock.ExpectQuery(`CAST\(mlc\.uuid`).WithArgs(uint64(999), menuName).
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}))

	r := NewResolver(db, nil, 1, zap.NewNop().Sugar())
	pages, err := r.Pages(context.Background(), 999)
	if err != nil {
		t.Fatalf("Pages error: %v", err)
	}
	if len(pages) != 0 {
		t.Fatalf("want no pages for missing node, got %#v", pages)
	}
}

func TestResolveAll_ErrorAbortsBatch(t *testing.T) {
	db, mock := newMock(t)

	// One bound club whose homepage projection dies mid-query.  The batch
	// must surface the failure and return no partial results.
	mock.ExpectQuery(`ORDER BY is_intraclub`).
		WillReturnRows(sqlmock.NewRows(bindingCols).
			AddRow(10, 123, "Sunset Riders", 100, false))
	mock.ExpectQuery(`FROM node_field_data WHERE nid`).
		WithArgs(uint64(100)).
		WillReturnError(errors.New("connection reset"))

	r := NewResolver(db, nil, 1, zap.NewNop().Sugar())
	sites, err := r.ResolveAll(context.Background())
	if err == nil {
		t.Fatal("want batch failure when a club fails to resolve")
	}
	if sites != nil {
		t.Fatalf("failed batch must return no partial results, got %#v", sites)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
