// internal/roster/events.go
//
// Published-event export with owner resolution.
//
// Context
// -------
// Events carry a field_club reference to a microsite club node, but the
// export wants the owning main-site node instead, so the query walks
// field_club → field_main_site_club back to the ssp_club or ssp_region
// node.  Events with no resolvable owner are international and ship with
// both owner columns NULL.  One wide LEFT JOIN, one record per event;
// the GROUP BY absorbs duplicate side rows the CMS accumulated.
//
// Notes
// -----
// • Dates stay as strings, same as users.go; the driver returns CAST
//   DATETIME columns as text without parseTime.
// • Oxford commas, two spaces after periods.
package roster

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Event is one published event with its owning club or region resolved.
type Event struct {
	NID                  uint64  `db:"nid"                   json:"nid"`
	Title                string  `db:"title"                 json:"title"`
	StartDate            *string `db:"start_date"            json:"start_date,omitempty"`
	EndDate              *string `db:"end_date"              json:"end_date,omitempty"`
	Description          *string `db:"description"           json:"description,omitempty"`
	LocationName         *string `db:"location_name"         json:"location_name,omitempty"`
	Address              *string `db:"address"               json:"address,omitempty"`
	Phone                *string `db:"phone"                 json:"phone,omitempty"`
	WebsiteURL           *string `db:"website_url"           json:"website_url,omitempty"`
	Body                 *string `db:"body"                  json:"body,omitempty"`
	RegistrationURL      *string `db:"registration_url"      json:"registration_url,omitempty"`
	RegistrationLabel    *string `db:"registration_label"    json:"registration_label,omitempty"`
	RegistrationDeadline *string `db:"registration_deadline" json:"registration_deadline,omitempty"`
	ContactName          *string `db:"contact_name"          json:"contact_name,omitempty"`
	ContactEmail         *string `db:"contact_email"         json:"contact_email,omitempty"`
	ContactPhone         *string `db:"contact_phone"         json:"contact_phone,omitempty"`
	OwnerNID             *uint64 `db:"owner_nid"             json:"owner_nid,omitempty"`
	OwnerNodeType        *string `db:"owner_node_type"       json:"owner_node_type,omitempty"`
	Created              int64   `db:"created"               json:"created"`
	Changed              int64   `db:"changed"               json:"changed"`
}

// AllEvents returns every published event.
func AllEvents(ctx context.Context, db *sqlx.DB) ([]Event, error) {
	const q = `
        SELECT e.nid                                          AS nid,
               e.title                                        AS title,
               CAST(d.field_date_value AS DATETIME)           AS start_date,
               CAST(d.field_date_end_value AS DATETIME)       AS end_date,
               desc_f.field_event_description_value           AS description,
               loc.field_event_location_name_value            AS location_name,
               addr.field_event_address_value                 AS address,
               ph.field_event_phone_value                     AS phone,
               web.field_event_website_uri                    AS website_url,
               body.body_value                                AS body,
               rl.field_registration_link_uri                 AS registration_url,
               rl.field_registration_link_title               AS registration_label,
               CAST(rdd.field_registration_deadline_value AS DATE) AS registration_deadline,
               cn.field_contact_name_value                    AS contact_name,
               ce.field_contact_email_value                   AS contact_email,
               cp.field_contact_phone_value                   AS contact_phone,
               msc.entity_id                                  AS owner_nid,
               owner_nd.type                                  AS owner_node_type,
               e.created                                      AS created,
               e.changed                                      AS changed
        FROM   node_field_data e
        LEFT JOIN node__field_date d ON e.nid = d.entity_id AND d.deleted = 0
        LEFT JOIN node__field_event_description desc_f ON e.nid = desc_f.entity_id AND desc_f.deleted = 0
        LEFT JOIN node__field_event_location_name loc ON e.nid = loc.entity_id AND loc.deleted = 0
        LEFT JOIN node__field_event_address addr ON e.nid = addr.entity_id AND addr.deleted = 0
        LEFT JOIN node__field_event_phone ph ON e.nid = ph.entity_id AND ph.deleted = 0
        LEFT JOIN node__field_event_website web ON e.nid = web.entity_id AND web.deleted = 0
        LEFT JOIN node__body body ON e.nid = body.entity_id AND body.deleted = 0
        LEFT JOIN node__field_registration_link rl ON e.nid = rl.entity_id AND rl.deleted = 0
        LEFT JOIN node__field_registration_deadline rdd ON e.nid = rdd.entity_id AND rdd.deleted = 0
        LEFT JOIN node__field_contact_name cn ON e.nid = cn.entity_id AND cn.deleted = 0
        LEFT JOIN node__field_contact_email ce ON e.nid = ce.entity_id AND ce.deleted = 0
        LEFT JOIN node__field_contact_phone cp ON e.nid = cp.entity_id AND cp.deleted = 0
        LEFT JOIN node__field_club fc ON e.nid = fc.entity_id AND fc.deleted = 0
        LEFT JOIN node__field_main_site_club msc
               ON fc.field_club_target_id = msc.field_main_site_club_target_id AND msc.deleted = 0
        LEFT JOIN node_field_data owner_nd ON msc.entity_id = owner_nd.nid
        WHERE  e.type = 'event'
          AND  e.status = 1
        GROUP BY e.nid`

	var events []Event
	if err := db.SelectContext(ctx, &events, q); err != nil {
		return nil, err
	}
	return events, nil
}
