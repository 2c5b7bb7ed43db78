// internal/microsite/page.go
//
// Page model and body fusion (the Content Fuser).
//
// Context
// -------
// A microsite page's content is spread across up to three independent body
// fields: field_summary, the standard node body, and a custom field_body a
// few dozen lander pages use instead.  Pages mix and match freely, so the
// fused body is simply the non-empty fragments joined in that fixed order
// with a blank line between them.  The page's display title likewise has an
// override: field_page_title wins over the node title when present.
//
// No HTML validation happens here.  The CMS stored whatever editors typed,
// and the export preserves it byte for byte.
//
// Notes
// -----
// • pageFields is the declarative join spec the generic projector consumes;
//   this is the only place the page schema is spelled out.
// • Oxford commas, two spaces after periods.
package microsite

import (
	"strings"

	"github.com/yanizio/ddb/internal/entity"
)

// Page is one resolved microsite page.
type Page struct {
	NID        uint64   `json:"nid"`
	Title      string   `json:"title"`
	BodyHTML   string   `json:"body_html"`
	Published  bool     `json:"published"`
	Path       string   `json:"path,omitempty"`
	MenuID     *uint64  `json:"menu_id,omitempty"`
	MenuTitle  *string  `json:"menu_title,omitempty"`
	MenuWeight *int32   `json:"menu_weight,omitempty"`
	MenuParent *string  `json:"menu_parent,omitempty"`
	HeroImage  *string  `json:"hero_image,omitempty"`
	NavImage   *string  `json:"nav_image,omitempty"`
	MediaPaths []string `json:"media_paths,omitempty"`
}

// pageFields declares every side table a page projection needs.
var pageFields = []entity.FieldSpec{
	{Name: "page_title", Table: "node__field_page_title", Column: "field_page_title_value"},
	{Name: "summary", Table: "node__field_summary", Column: "field_summary_value"},
	{Name: "body", Table: "node__body", Column: "body_value"},
	{Name: "custom_body", Table: "node__field_body", Column: "field_body_value"},
}

// pageFromRecord builds a Page from a projected entity: effective title,
// fused body, published flag.  Menu metadata and images are attached later
// by the resolver.
func pageFromRecord(rec *entity.Record) Page {
	// A present field_page_title row wins even when its value is empty;
	// only an absent (or NULL) row falls back to the node title.
	title := rec.Title
	if v, ok := rec.Value("page_title"); ok {
		title = v
	}

	summary, _ := rec.Value("summary")
	body, _ := rec.Value("body")
	custom, _ := rec.Value("custom_body")

	return Page{
		NID:       rec.NID,
		Title:     title,
		BodyHTML:  fuseBody(summary, body, custom),
		Published: rec.Published,
	}
}

// fuseBody joins the present fragments in their fixed order with one blank
// line between each pair.  Absent fragments contribute nothing, including
// their separators.
func fuseBody(summary, body, custom string) string {
	var parts []string
	for _, v := range []string{summary, body, custom} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n\n")
}

// appendBody extends a page body with more markup, inserting the blank-line
// separator only when both sides are non-empty.
func appendBody(body, extra string) string {
	switch {
	case extra == "":
		return body
	case body == "":
		return extra
	default:
		return body + "\n\n" + extra
	}
}

// applyMenu copies menu metadata onto the page.
func (p *Page) applyMenu(e *MenuEntry) {
	if e == nil {
		return
	}
	id, title, weight, parent := e.ID, e.Title, e.Weight, e.Parent
	p.MenuID = &id
	p.MenuTitle = &title
	p.MenuWeight = &weight
	p.MenuParent = &parent
}
