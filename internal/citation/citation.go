// Package citation defines the core domain types for citation verification.
package citation

// Input is a citation as extracted from a document, before verification.
// No single field is required, but at least one identifying field (DOI, PMID,
// URL, or title) must be present for verification to produce evidence.
type Input struct {
	DOI     string   `json:"doi,omitempty"`
	PMID    string   `json:"pmid,omitempty"`
	URL     string   `json:"url,omitempty"`
	Title   string   `json:"title,omitempty"`
	Authors []string `json:"authors,omitempty"` // Names as written, citation order
	Year    int      `json:"year,omitempty"`    // 0 if unknown
	Journal string   `json:"journal,omitempty"`
}

// HasIdentifier reports whether the input carries at least one field that can
// drive a lookup.
func (in Input) HasIdentifier() bool {
	return in.DOI != "" || in.PMID != "" || in.URL != "" || in.Title != ""
}

// Work is a bibliographic record as retrieved from an external source.
// Constructed only by a source client on a successful lookup; treated as
// immutable afterwards.
type Work struct {
	DOI     string   `json:"doi"`
	Title   string   `json:"title"`
	Authors []Author `json:"authors"`
	Year    int      `json:"year"` // 0 if unknown
	Journal string   `json:"journal"`

	Publisher string `json:"publisher,omitempty"`
	Type      string `json:"type,omitempty"`
	Volume    string `json:"volume,omitempty"`
	Issue     string `json:"issue,omitempty"`
	Pages     string `json:"pages,omitempty"`

	// Raw retraction-relevant metadata carried through from the source
	// payload for the retraction detector. Updates holds CrossRef-style
	// "update-to" entries; Retracted is the OpenAlex-style flag.
	Updates   []Update `json:"updates,omitempty"`
	Retracted bool     `json:"retracted,omitempty"`
}

// Update is a source-reported amendment to a work (retraction, withdrawal,
// expression of concern, or correction notice).
type Update struct {
	Type  string `json:"type"`            // e.g. "retraction", "correction"
	Label string `json:"label,omitempty"` // Human-readable label from the source
	Date  string `json:"date,omitempty"`  // YYYY-MM-DD, may be partial
	URL   string `json:"url,omitempty"`   // Notice URL
}

// Author is a work author with name parts as reported by the source.
type Author struct {
	Given   string `json:"given,omitempty"`
	Family  string `json:"family,omitempty"`
	Display string `json:"display"` // Composed display name, always populated
}

// DisplayName returns the composed display name, reconstructing it from the
// given/family parts when the source did not supply one.
func (a Author) DisplayName() string {
	if a.Display != "" {
		return a.Display
	}
	if a.Given != "" && a.Family != "" {
		return a.Given + " " + a.Family
	}
	if a.Family != "" {
		return a.Family
	}
	return a.Given
}
