package openalex

import (
	"strconv"
	"strings"

	"github.com/matsen/citevet/internal/citation"
	"github.com/matsen/citevet/internal/doi"
)

// mapWork normalizes a raw OpenAlex payload into the common work shape.
func mapWork(w openalexWork) *citation.Work {
	work := &citation.Work{
		DOI:       doi.Normalize(w.DOI),
		Title:     title(w),
		Authors:   mapAuthors(w.Authorships),
		Year:      extractYear(w),
		Journal:   journal(w),
		Publisher: publisher(w),
		Type:      w.Type,
		Volume:    w.Biblio.Volume,
		Issue:     w.Biblio.Issue,
		Pages:     pages(w),
		Retracted: w.IsRetracted,
	}
	return work
}

// title prefers the dedicated title field, falling back to display_name
// (older records populate only the latter).
func title(w openalexWork) string {
	if w.Title != "" {
		return w.Title
	}
	return w.DisplayName
}

// extractYear prefers the explicit publication year, falling back to the
// year component of the publication date.
func extractYear(w openalexWork) int {
	if w.PublicationYear != 0 {
		return w.PublicationYear
	}
	if len(w.PublicationDate) >= 4 {
		if y, err := strconv.Atoi(w.PublicationDate[:4]); err == nil {
			return y
		}
	}
	return 0
}

func mapAuthors(raw []authorship) []citation.Author {
	authors := make([]citation.Author, 0, len(raw))
	for _, a := range raw {
		authors = append(authors, citation.Author{
			Display: a.Author.DisplayName,
		})
	}
	return authors
}

func journal(w openalexWork) string {
	if w.PrimaryLocation == nil || w.PrimaryLocation.Source == nil {
		return ""
	}
	return w.PrimaryLocation.Source.DisplayName
}

func publisher(w openalexWork) string {
	if w.PrimaryLocation == nil || w.PrimaryLocation.Source == nil {
		return ""
	}
	return w.PrimaryLocation.Source.HostOrganizationName
}

func pages(w openalexWork) string {
	first := strings.TrimSpace(w.Biblio.FirstPage)
	last := strings.TrimSpace(w.Biblio.LastPage)
	switch {
	case first == "":
		return ""
	case last == "" || last == first:
		return first
	default:
		return first + "-" + last
	}
}
