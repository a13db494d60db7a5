// Package retraction inspects a found work's source metadata for
// retraction, withdrawal, and concern markers.
package retraction

import (
	"strings"

	"github.com/matsen/citevet/internal/citation"
)

// natureByUpdateType maps source update-type markers to a signal nature.
// CrossRef-style types on the left; anything unlisted is not a signal
// (e.g. "new_version", "preprint").
var natureByUpdateType = map[string]citation.RetractionNature{
	"retraction":            citation.NatureRetraction,
	"retracted":             citation.NatureRetraction,
	"withdrawal":            citation.NatureRetraction,
	"withdrawn":             citation.NatureRetraction,
	"removal":               citation.NatureRetraction,
	"expression_of_concern": citation.NatureConcern,
	"expression-of-concern": citation.NatureConcern,
	"concern":               citation.NatureConcern,
	"correction":            citation.NatureCorrection,
	"corrigendum":           citation.NatureCorrection,
	"erratum":               citation.NatureCorrection,
	"partial_retraction":    citation.NatureRetraction,
}

// Detect returns the first retraction signal present in the work's source
// metadata, or nil when the work carries none. Pure function of the payload;
// it never issues network calls.
func Detect(w *citation.Work) *citation.RetractionSignal {
	if w == nil {
		return nil
	}

	for _, u := range w.Updates {
		nature, ok := natureByUpdateType[strings.ToLower(strings.TrimSpace(u.Type))]
		if !ok {
			continue
		}
		signal := &citation.RetractionSignal{
			Nature:    nature,
			Date:      u.Date,
			NoticeURL: u.URL,
		}
		if u.Label != "" {
			signal.Reasons = []string{u.Label}
		}
		return signal
	}

	// OpenAlex reports a bare boolean with no notice metadata.
	if w.Retracted {
		return &citation.RetractionSignal{Nature: citation.NatureRetraction}
	}

	return nil
}
