// internal/roster/events_test.go

package roster

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAllEvents_OwnerResolution(t *testing.T) {
	db, mock := newMock(t)

	cols := []string{"nid", "title", "start_date", "end_date", "description",
		"location_name", "address", "phone", "website_url", "body",
		"registration_url", "registration_label", "registration_deadline",
		"contact_name", "contact_email", "contact_phone",
		"owner_nid", "owner_node_type", "created", "changed"}

	// One club-owned event, one international event whose owner join found
	// nothing and left both owner columns NULL.
	mock.ExpectQuery(`e.type = 'event'`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(700, "Spring Luncheon", "2025-04-12 11:00:00", "2025-04-12 14:00:00",
				"Annual spring gathering.", "Elks Lodge", "12 Main St", nil,
				"https://example.org/luncheon", nil,
				"https://example.org/signup", "Register", "2025-04-01",
				"Pat Doe", "pat@example.org", nil,
				47596, "ssp_club", 1700000000, 1700000001).
			AddRow(701, "International Swap Meet", nil, nil, nil,
				nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
				nil, nil, 1700000002, 1700000003))

	got, err := AllEvents(context.Background(), db)
	if err != nil {
		t.Fatalf("AllEvents error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].OwnerNID == nil || *got[0].OwnerNID != 47596 {
		t.Fatalf("owner nid mismatch: %+v", got[0])
	}
	if got[0].OwnerNodeType == nil || *got[0].OwnerNodeType != "ssp_club" {
		t.Fatalf("owner type mismatch: %+v", got[0])
	}
	if got[1].OwnerNID != nil || got[1].OwnerNodeType != nil {
		t.Fatalf("international event must carry no owner: %+v", got[1])
	}
	if got[1].StartDate != nil {
		t.Fatalf("absent start date must stay nil: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
