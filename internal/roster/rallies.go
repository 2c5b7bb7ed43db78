// internal/roster/rallies.go
//
// International-rally and rally-registration export.
//
// Context
// -------
// Rallies store prices as DECIMAL dollars; the export wants integer cents,
// so every price column is multiplied by 100 and CAST to SIGNED in SQL
// rather than rounded in Go.  Registrations are their own node type, one
// per attending user, linked to the rally and the user by reference
// fields.  A registration with a second attendee first name counts as
// partner-attending.
//
// Notes
// -----
// • Dates stay as strings, same as users.go.
// • Oxford commas, two spaces after periods.
package roster

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Rally is one international rally with its pricing schedule.
type Rally struct {
	NID                         uint64  `db:"nid"                            json:"nid"`
	Title                       string  `db:"title"                          json:"title"`
	Location                    *string `db:"location"                       json:"location,omitempty"`
	StartDate                   *string `db:"start_date"                     json:"start_date,omitempty"`
	EarlyRegistrationDate       *string `db:"early_registration_date"        json:"early_registration_date,omitempty"`
	RegistrationEndDate         *string `db:"registration_end_date"          json:"registration_end_date,omitempty"`
	AdultPriceCents             *int64  `db:"adult_price_cents"              json:"adult_price_cents,omitempty"`
	YouthPriceCents             *int64  `db:"youth_price_cents"              json:"youth_price_cents,omitempty"`
	ChildPriceCents             *int64  `db:"child_price_cents"              json:"child_price_cents,omitempty"`
	CampsitePriceCents          *int64  `db:"campsite_price_cents"           json:"campsite_price_cents,omitempty"`
	LifetimeMemberDiscountCents *int64  `db:"lifetime_member_discount_cents" json:"lifetime_member_discount_cents,omitempty"`
	Published                   bool    `db:"published"                      json:"published"`
	Year                        *int64  `db:"year"                           json:"year,omitempty"`
}

// AllRallies returns every international rally, published or not; drafts
// of next year's rally carry pricing the migration wants early.
func AllRallies(ctx context.Context, db *sqlx.DB) ([]Rally, error) {
	const q = `
        SELECT nd.nid                                                   AS nid,
               nd.title                                                 AS title,
               loc.field_location_value                                 AS location,
               CAST(sd.field_start_date_value AS DATE)                  AS start_date,
               CAST(erd.field_early_registration_date_value AS DATE)    AS early_registration_date,
               CAST(red.field_registration_end_date_value AS DATE)      AS registration_end_date,
               CAST(ap.field_adult_price_value * 100 AS SIGNED)         AS adult_price_cents,
               CAST(yp.field_youth_price_value * 100 AS SIGNED)         AS youth_price_cents,
               CAST(cp.field_child_price_value * 100 AS SIGNED)         AS child_price_cents,
               CAST(csp.field_campsite_price_value * 100 AS SIGNED)     AS campsite_price_cents,
               CAST(lmd.field_lifetime_member_discount_value * 100 AS SIGNED) AS lifetime_member_discount_cents,
               CASE WHEN nd.status = 1 THEN TRUE ELSE FALSE END         AS published,
               CAST(y.field_year_value AS SIGNED)                       AS year
        FROM   node_field_data nd
        LEFT JOIN node__field_location loc ON loc.entity_id = nd.nid AND loc.deleted = 0
        LEFT JOIN node__field_start_date sd ON sd.entity_id = nd.nid AND sd.deleted = 0
        LEFT JOIN node__field_early_registration_date erd ON erd.entity_id = nd.nid AND erd.deleted = 0
        LEFT JOIN node__field_registration_end_date red ON red.entity_id = nd.nid AND red.deleted = 0
        LEFT JOIN node__field_adult_price ap ON ap.entity_id = nd.nid AND ap.deleted = 0
        LEFT JOIN node__field_youth_price yp ON yp.entity_id = nd.nid AND yp.deleted = 0
        LEFT JOIN node__field_child_price cp ON cp.entity_id = nd.nid AND cp.deleted = 0
        LEFT JOIN node__field_campsite_price csp ON csp.entity_id = nd.nid AND csp.deleted = 0
        LEFT JOIN node__field_lifetime_member_discount lmd ON lmd.entity_id = nd.nid AND lmd.deleted = 0
        LEFT JOIN node__field_year y ON y.entity_id = nd.nid AND y.deleted = 0
        WHERE  nd.type = 'international_rally'`

	var rallies []Rally
	if err := db.SelectContext(ctx, &rallies, q); err != nil {
		return nil, err
	}
	return rallies, nil
}

// RallyRegistration is one user's registration for one rally.
type RallyRegistration struct {
	NID               uint64 `db:"nid"                 json:"nid"`
	RallyNID          uint64 `db:"rally_nid"           json:"rally_nid"`
	UserUID           uint64 `db:"user_uid"            json:"user_uid"`
	PartnerAttending  bool   `db:"partner_attending"   json:"partner_attending"`
	FirstTimeAttendee bool   `db:"first_time_attendee" json:"first_time_attendee"`
	AmountPaidCents   *int64 `db:"amount_paid_cents"   json:"amount_paid_cents,omitempty"`
	AmountDueCents    *int64 `db:"amount_due_cents"    json:"amount_due_cents,omitempty"`
	Created           int64  `db:"created"             json:"created"`
}

// AllRallyRegistrations returns every rally registration.  The inner joins
// drop malformed registrations missing their rally or user reference.
func AllRallyRegistrations(ctx context.Context, db *sqlx.DB) ([]RallyRegistration, error) {
	const q = `
        SELECT nd.nid                                            AS nid,
               fr.field_rally_target_id                          AS rally_nid,
               fur.field_user_registered_target_id               AS user_uid,
               CASE WHEN a2fn.field_attendee_2_first_name_value IS NOT NULL
                    THEN TRUE ELSE FALSE END                     AS partner_attending,
               COALESCE(fta.field_first_time_attendee_value, 0)  AS first_time_attendee,
               CAST(fap.field_amount_paid_value * 100 AS SIGNED) AS amount_paid_cents,
               CAST(fad.field_amount_due_value * 100 AS SIGNED)  AS amount_due_cents,
               nd.created                                        AS created
        FROM   node_field_data nd
        JOIN   node__field_rally fr ON fr.entity_id = nd.nid AND fr.deleted = 0
        JOIN   node__field_user_registered fur ON fur.entity_id = nd.nid AND fur.deleted = 0
        LEFT JOIN node__field_attendee_2_first_name a2fn ON a2fn.entity_id = nd.nid AND a2fn.deleted = 0
        LEFT JOIN node__field_first_time_attendee fta ON fta.entity_id = nd.nid AND fta.deleted = 0
        LEFT JOIN node__field_amount_paid fap ON fap.entity_id = nd.nid AND fap.deleted = 0
        LEFT JOIN node__field_amount_due fad ON fad.entity_id = nd.nid AND fad.deleted = 0
        WHERE  nd.type = 'rally_registration'`

	var regs []RallyRegistration
	if err := db.SelectContext(ctx, &regs, q); err != nil {
		return nil, err
	}
	return regs, nil
}
