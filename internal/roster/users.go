// internal/roster/users.go
//
// Flat user mapper over the Drupal membership tables.
//
// Context
// -------
// Unlike microsite resolution, user export is a single wide join: one base
// row in users_field_data plus a dozen optional profile side tables, each
// LEFT JOINed with its soft-delete guard.  No tree walking, no content
// fusion—one query, one record per user.
//
// Notes
// -----
// • The column list and the User struct must be updated together.
// • Dates stay as strings; the export format wants ISO dates and the
//   driver returns DATE columns as text without parseTime.
// • Oxford commas, two spaces after periods.
package roster

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// User is one exported Drupal account with its profile fields.
type User struct {
	UID                     uint64  `db:"uid"                      json:"uid"`
	Email                   string  `db:"email"                    json:"email"`
	FirstName               *string `db:"first_name"               json:"first_name,omitempty"`
	LastName                *string `db:"last_name"                json:"last_name,omitempty"`
	Birthday                *string `db:"birthday"                 json:"birthday,omitempty"`
	LastLogin               *string `db:"last_login"               json:"last_login,omitempty"`
	Pass                    *string `db:"pass"                     json:"-"`
	Gender                  *string `db:"gender"                   json:"gender,omitempty"`
	CommunicationPreference *string `db:"communication_preference" json:"communication_preference,omitempty"`
	BlueBeretMail           *bool   `db:"blue_beret_mail"          json:"blue_beret_mail,omitempty"`
	PublishInfo             *bool   `db:"publish_info"             json:"publish_info,omitempty"`
	SpecialNeeds            bool    `db:"special_needs"            json:"special_needs"`
	ADAParking              bool    `db:"ada_parking"              json:"ada_parking"`
	MemberNotes             *string `db:"member_notes"             json:"member_notes,omitempty"`
	MilitaryStatus          *string `db:"military_status"          json:"military_status,omitempty"`
	FirstResponderStatus    *string `db:"first_responder_status"   json:"first_responder_status,omitempty"`
	Active                  bool    `db:"active"                   json:"active"`
}

const userSelect = `
        SELECT DISTINCT
               u.uid                                          AS uid,
               u.mail                                         AS email,
               fn.field_first_name_value                      AS first_name,
               ln.field_last_name_value                       AS last_name,
               CAST(bd.field_birth_date_value AS DATE)        AS birthday,
               DATE(FROM_UNIXTIME(u.login))                   AS last_login,
               u.pass                                         AS pass,
               g.field_gender_value                           AS gender,
               cp.field_communication_preferences_value       AS communication_preference,
               bb.field_blue_beret_mail_value                 AS blue_beret_mail,
               pi.field_publish_info_value                    AS publish_info,
               CASE WHEN sm.field_special_member_value = 1 THEN TRUE ELSE FALSE END AS special_needs,
               CASE WHEN ap.field_ada_parking_value = 1 THEN TRUE ELSE FALSE END    AS ada_parking,
               sp.field_spe_value                             AS member_notes,
               mi.field_military_value                        AS military_status,
               fr.field_first_responder_value                 AS first_responder_status,
               CASE WHEN u.status = 1 THEN TRUE ELSE FALSE END AS active
        FROM   users_field_data u
        LEFT JOIN user__field_first_name fn ON fn.entity_id = u.uid
        LEFT JOIN user__field_last_name ln ON ln.entity_id = u.uid
        LEFT JOIN user__field_birth_date bd ON bd.entity_id = u.uid
        LEFT JOIN user__field_gender g ON g.entity_id = u.uid AND g.deleted = 0
        LEFT JOIN user__field_communication_preferences cp ON cp.entity_id = u.uid AND cp.deleted = 0
        LEFT JOIN user__field_blue_beret_mail bb ON bb.entity_id = u.uid AND bb.deleted = 0
        LEFT JOIN user__field_publish_info pi ON pi.entity_id = u.uid AND pi.deleted = 0
        LEFT JOIN user__field_special_member sm ON sm.entity_id = u.uid AND sm.deleted = 0
        LEFT JOIN user__field_ada_parking ap ON ap.entity_id = u.uid AND ap.deleted = 0
        LEFT JOIN user__field_spe sp ON sp.entity_id = u.uid AND sp.deleted = 0
        LEFT JOIN user__field_military mi ON mi.entity_id = u.uid AND mi.deleted = 0
        LEFT JOIN user__field_first_responder fr ON fr.entity_id = u.uid AND fr.deleted = 0
        WHERE  u.mail IS NOT NULL
          AND  `

// UserByUID fetches one user, or nil when the uid is unknown.
func UserByUID(ctx context.Context, db *sqlx.DB, uid uint64) (*User, error) {
	var u User
	if err := db.GetContext(ctx, &u, userSelect+`u.uid = ?`, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UserByEmail fetches one user by mail address, or nil.
func UserByEmail(ctx context.Context, db *sqlx.DB, email string) (*User, error) {
	var u User
	if err := db.GetContext(ctx, &u, userSelect+`u.mail = ?`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// AllUsers returns every account with a non-empty mail address.
func AllUsers(ctx context.Context, db *sqlx.DB) ([]User, error) {
	var users []User
	if err := db.SelectContext(ctx, &users, userSelect+`u.mail != ''`); err != nil {
		return nil, err
	}
	return users, nil
}

// UserAvatar is one custom profile picture.
type UserAvatar struct {
	UID uint64 `db:"uid" json:"uid"`
	URI string `db:"uri" json:"uri"`
}

// Avatars returns every user with a custom avatar, excluding the stock
// default images.
func Avatars(ctx context.Context, db *sqlx.DB) ([]UserAvatar, error) {
	const q = `
        SELECT u.uid, f.uri
        FROM   users_field_data u
        JOIN   user__user_picture p ON u.uid = p.entity_id
        JOIN   file_managed f ON p.user_picture_target_id = f.fid
        WHERE  f.uri NOT LIKE '%default%'
          AND  f.uri LIKE 'public://%'`

	var rows []UserAvatar
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}
