// internal/config/model.go
//
// Typed configuration model for ddb.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                        – dotenv values,
//   • `conf/global.yaml`                     – primary static file,
//   • `DDB_`-prefixed environment overrides  – highest precedence.
//
// A `database.password` whose string begins with the prefix `vault:` is
// resolved through the Vault client after unmarshalling, so the rest of the
// program only ever sees a plain DSN.
//
// Validation happens immediately after unmarshal; the binary fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • The override pairs live here, not in code, so CMS title drift is a
//     config edit rather than a rebuild.
//   • Oxford commas, two spaces after periods.

package config

//
// Database section
//

// Database holds the Drupal store DSN and pool tunables.
//
// The DSN may carry exactly one `%s` verb where the password belongs.  The
// secret itself lives in `Password`, either plain or as a `vault:` reference,
// keeping credentials out of flat files and git history.
type Database struct {
	DSN          string `koanf:"dsn"      validate:"required"`
	Password     string `koanf:"password"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"gte=0"`
}

//
// Microsites section
//

// OverridePair maps one club node to one homepage node when their titles do
// not match.  Both sides are re-validated against their node types at query
// time, so a stale pair degrades to "no match" rather than bad data.
type OverridePair struct {
	ClubNID     uint64 `koanf:"club_nid"     validate:"required"`
	HomepageNID uint64 `koanf:"homepage_nid" validate:"required"`
}

// Microsites holds resolution tunables for the microsite engine.
type Microsites struct {
	// Overrides lists club→homepage pairs whose titles do not match.
	Overrides []OverridePair `koanf:"overrides" validate:"dive"`
	// Workers bounds cross-club fan-out.  Zero means the resolver default.
	Workers int `koanf:"workers" validate:"gte=0"`
}

//
// Metrics section
//

// Metrics configures the optional Prometheus listener.  Empty address means
// no listener; counters are still registered and visible in logs.
type Metrics struct {
	ListenAddr string `koanf:"listen_addr" validate:"omitempty,hostname_port"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or DDB_ROOT override) so later code can build
// absolute file paths for logs.
type Paths struct {
	Root string // DDB_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the process lifetime.
type Config struct {
	Database   Database   `koanf:"database"`
	Microsites Microsites `koanf:"microsites"`
	Metrics    Metrics    `koanf:"metrics"`
	Paths      Paths      `koanf:"-"` // not loaded from config files
}
