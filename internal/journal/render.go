package journal

import (
	"fmt"
	"strings"
	"time"
)

// RenderSafe escapes &, < and > for embedding text in element content.
// Ampersands go first so later substitutions are not double-escaped.
// Quotes are left alone; the result is not safe inside attributes.
func RenderSafe(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	return strings.ReplaceAll(text, ">", "&gt;")
}

// FormatDateTime renders t as "02 January 2006 15:04" in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("02 January 2006 15:04")
}

// RenderHTML renders entries in the order given as an HTML fragment.
func RenderHTML(entries []Entry, loc *time.Location) string {
	if len(entries) == 0 {
		return `<p class="muted">No entries yet.</p>`
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(`<div class="entry">`)
		fmt.Fprintf(&b, `<div class="entry-date"><strong>%s</strong></div>`, FormatDateTime(e.CreatedAt, loc))
		fmt.Fprintf(&b, `<div class="entry-meta"><span class="mood"><strong>Mood:</strong> %s</span>`, e.Mood.Label())
		fmt.Fprintf(&b, `<span class="rating"><strong>Day Rating:</strong> %d/10</span></div>`, e.Rating)
		fmt.Fprintf(&b, `<div class="entry-text">%s</div>`, RenderSafe(e.Text))
		b.WriteString(`</div>`)
		b.WriteByte('\n')
	}
	return b.String()
}
