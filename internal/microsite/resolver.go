// internal/microsite/resolver.go
//
// Microsite resolution orchestration.
//
// Context
// -------
// One club's resolution is a strictly sequential chain—binding supplies the
// homepage, the menu walk supplies the page set, each page is projected,
// fused, extended with paragraph markup, and scanned for media—because every
// step's query parameters come from the previous step's result.  Across
// clubs nothing is shared, so ResolveAll fans out over an errgroup bounded
// by the worker count, which should not exceed the pool's max open
// connections.
//
// Error posture follows the store's nature: "no rows" is data (absent
// homepage, empty menu, missing alias), while a failed query aborts the
// whole club.  No retries here; the caller owns retry policy.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package microsite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/ddb/internal/drupal"
	"github.com/yanizio/ddb/internal/entity"
	"github.com/yanizio/ddb/internal/metrics"
	"github.com/yanizio/ddb/internal/slug"
)

// defaultWorkers bounds cross-club fan-out when the config leaves it unset.
const defaultWorkers = 8

// Microsite is the full resolved aggregate for one club.
type Microsite struct {
	Club   ClubMicrosite  `json:"club"`
	Slug   string         `json:"slug,omitempty"`
	Pages  []Page         `json:"pages"`
	Assets HomepageAssets `json:"assets"`
}

// Resolver holds the pool and run configuration for microsite resolution.
// Safe for concurrent use; it keeps no per-run state.
type Resolver struct {
	db        *sqlx.DB
	overrides []OverridePair
	workers   int
	log       *zap.SugaredLogger
}

// NewResolver wires a Resolver.  workers <= 0 selects the default; a nil
// logger falls back to the process-wide one.
func NewResolver(db *sqlx.DB, overrides []OverridePair, workers int, log *zap.SugaredLogger) *Resolver {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if log == nil {
		log = zap.S()
	}
	return &Resolver{db: db, overrides: overrides, workers: workers, log: log}
}

// Clubs returns every club→homepage binding under this resolver's override
// list.
func (r *Resolver) Clubs(ctx context.Context) ([]ClubMicrosite, error) {
	return ClubsWithMicrosites(ctx, r.db, r.overrides)
}

// Slugs returns the alias-derived slug for every bound club.
func (r *Resolver) Slugs(ctx context.Context) ([]ClubSlug, error) {
	return Slugs(ctx, r.db, r.overrides)
}

// Pages resolves the homepage plus its menu children, in menu order.  A
// homepage with no menu entry yields just the homepage page; a homepage nid
// with no node row yields an empty slice.
func (r *Resolver) Pages(ctx context.Context, homepageNID uint64) ([]Page, error) {
	var pages []Page

	hp, err := r.page(ctx, homepageNID, nil)
	if err != nil {
		return nil, err
	}
	if hp != nil {
		pages = append(pages, *hp)
	}

	ref, err := homepageMenuReference(ctx, r.db, homepageNID)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return pages, nil
	}

	entries, err := childrenOf(ctx, r.db, ref)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		p, err := r.page(ctx, entries[i].NID, &entries[i])
		if err != nil {
			return nil, err
		}
		if p != nil {
			pages = append(pages, *p)
		}
	}
	return pages, nil
}

// page projects, fuses, and decorates one page.  menu may be nil, in which
// case the node's own menu entry is looked up (homepage case).  Returns nil
// when the node does not exist.
func (r *Resolver) page(ctx context.Context, nid uint64, menu *MenuEntry) (*Page, error) {
	rec, err := entity.Project(ctx, r.db, nid, pageFields)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	p := pageFromRecord(rec)

	if menu == nil {
		menu, err = menuEntryFor(ctx, r.db, nid)
		if err != nil {
			return nil, err
		}
	}
	p.applyMenu(menu)

	if p.HeroImage, err = mediaImageURI(ctx, r.db,
		"node__field_hero_banner_image", "field_hero_banner_image_target_id", nid); err != nil {
		return nil, err
	}
	if p.NavImage, err = mediaImageURI(ctx, r.db,
		"node__field_navigatio_", "field_navigatio__target_id", nid); err != nil {
		return nil, err
	}

	frag, err := fragmentsHTML(ctx, r.db, nid)
	if err != nil {
		return nil, err
	}
	p.BodyHTML = appendBody(p.BodyHTML, frag)

	p.MediaPaths = ExtractMediaPaths(p.BodyHTML)
	metrics.PagesFusedTotal.Inc()
	metrics.MediaPathsTotal.Add(float64(len(p.MediaPaths)))
	return &p, nil
}

// Resolve assembles the complete microsite for one club binding.
func (r *Resolver) Resolve(ctx context.Context, club ClubMicrosite) (*Microsite, error) {
	pages, err := r.Pages(ctx, club.HomepageNID)
	if err != nil {
		metrics.ResolveErrorsTotal.Inc()
		return nil, err
	}

	assets, err := ResolveHomepageAssets(ctx, r.db, club.HomepageNID)
	if err != nil {
		metrics.ResolveErrorsTotal.Inc()
		return nil, err
	}

	s, err := r.slugFor(ctx, club)
	if err != nil {
		metrics.ResolveErrorsTotal.Inc()
		return nil, err
	}

	// Export paths: homepage at /<slug>, children below it by page title.
	for i := range pages {
		if pages[i].NID == club.HomepageNID {
			pages[i].Path = slug.JoinPath("", s)
		} else {
			pages[i].Path = slug.JoinPath(s, slug.Make(pages[i].Title))
		}
	}

	metrics.MicrositesResolvedTotal.Inc()
	r.log.Infow("microsite resolved",
		"club", club.ClubName, "homepage", club.HomepageNID, "pages", len(pages))

	return &Microsite{Club: club, Slug: s, Pages: pages, Assets: assets}, nil
}

// slugFor prefers the CMS path alias, falling back to a slug derived from
// the club name when the homepage was never aliased.
func (r *Resolver) slugFor(ctx context.Context, club ClubMicrosite) (string, error) {
	const q = `
        SELECT TRIM(LEADING '/' FROM alias)
        FROM   path_alias
        WHERE  path = ?
        LIMIT  1`

	var s string
	err := r.db.GetContext(ctx, &s, q, drupal.NodePath(club.HomepageNID))
	if errors.Is(err, sql.ErrNoRows) {
		return slug.Make(club.ClubName), nil
	}
	if err != nil {
		return "", err
	}
	return s, nil
}

// ResolveAll resolves every bound club with bounded concurrency.  The first
// failing club cancels the remainder; partial batches are not returned.
func (r *Resolver) ResolveAll(ctx context.Context) ([]*Microsite, error) {
	clubs, err := r.Clubs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*Microsite, len(clubs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, club := range clubs {
		g.Go(func() error {
			ms, err := r.Resolve(ctx, club)
			if err != nil {
				r.log.Errorw("microsite resolve failed",
					"club", club.ClubName, "homepage", club.HomepageNID, "err", err)
				return err
			}
			results[i] = ms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
