package crossref

import (
	"fmt"
	"strings"

	"github.com/matsen/citevet/internal/citation"
	"github.com/matsen/citevet/internal/doi"
)

// mapWork normalizes a raw CrossRef payload into the common work shape.
func mapWork(w crossrefWork) *citation.Work {
	work := &citation.Work{
		DOI:       doi.Normalize(w.DOI),
		Title:     first(w.Title),
		Authors:   mapAuthors(w.Author),
		Year:      extractYear(w),
		Journal:   first(w.ContainerTitle),
		Publisher: w.Publisher,
		Type:      w.Type,
		Volume:    w.Volume,
		Issue:     w.Issue,
		Pages:     w.Page,
		Updates:   mapUpdates(w.UpdateTo),
	}
	return work
}

// mapAuthors converts CrossRef authors, composing the display name from
// given+family parts when no composed name is present.
func mapAuthors(raw []crossrefAuthor) []citation.Author {
	authors := make([]citation.Author, 0, len(raw))
	for _, a := range raw {
		author := citation.Author{
			Given:   a.Given,
			Family:  a.Family,
			Display: a.Name,
		}
		if author.Display == "" {
			author.Display = strings.TrimSpace(a.Given + " " + a.Family)
		}
		authors = append(authors, author)
	}
	return authors
}

// extractYear takes the year from the first populated date field, in
// print / online / issued / created order.
func extractYear(w crossrefWork) int {
	for _, d := range []*partedDate{w.PublishedPrint, w.PublishedOnline, w.Issued, w.Created} {
		if y := d.year(); y != 0 {
			return y
		}
	}
	return 0
}

// year returns the year component of a date-parts encoding, or 0.
func (d *partedDate) year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// formatDate renders date-parts as YYYY[-MM[-DD]].
func (d *partedDate) formatDate() string {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	parts := d.DateParts[0]
	switch len(parts) {
	case 1:
		return fmt.Sprintf("%04d", parts[0])
	case 2:
		return fmt.Sprintf("%04d-%02d", parts[0], parts[1])
	default:
		return fmt.Sprintf("%04d-%02d-%02d", parts[0], parts[1], parts[2])
	}
}

// mapUpdates carries update-to entries through for the retraction detector.
// The notice URL is derived from the update's own DOI.
func mapUpdates(raw []crossrefUpdate) []citation.Update {
	updates := make([]citation.Update, 0, len(raw))
	for _, u := range raw {
		update := citation.Update{
			Type:  u.Type,
			Label: u.Label,
			Date:  u.Updated.formatDate(),
		}
		if u.DOI != "" {
			update.URL = "https://doi.org/" + doi.Normalize(u.DOI)
		}
		updates = append(updates, update)
	}
	return updates
}

// first returns the first element of a string slice, or "".
func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
