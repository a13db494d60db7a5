package citation

// Status is the final classification of a verified citation.
type Status string

// Canonical status values. "skip" means no usable evidence either way and
// must never be rendered as an accusation.
const (
	StatusVerified     Status = "verified"
	StatusRetracted    Status = "retracted"
	StatusConcern      Status = "concern"
	StatusCorrection   Status = "correction"
	StatusFakeLikely   Status = "fake-likely"
	StatusFakeProbably Status = "fake-probably"
	StatusSkip         Status = "skip"
)

// SourceTag identifies which lookup source produced the evidence.
type SourceTag string

const (
	SourcePrimary   SourceTag = "primary"
	SourceSecondary SourceTag = "secondary"
	SourceNone      SourceTag = "none"
)

// Severity grades a metadata discrepancy.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Discrepancy records one mismatch between citation metadata as provided and
// as retrieved from a source.
type Discrepancy struct {
	Field    string   `json:"field"` // title, year, authors, journal, doi, url
	Provided string   `json:"provided"`
	Actual   string   `json:"actual"`
	Severity Severity `json:"severity"`
}

// RetractionNature classifies a retraction signal.
type RetractionNature string

const (
	NatureRetraction RetractionNature = "retraction"
	NatureConcern    RetractionNature = "expression-of-concern"
	NatureCorrection RetractionNature = "correction"
)

// RetractionSignal is a retraction/concern/correction marker found in a
// work's source metadata.
type RetractionSignal struct {
	Nature    RetractionNature `json:"nature"`
	Date      string           `json:"date,omitempty"`
	Reasons   []string         `json:"reasons,omitempty"`
	NoticeURL string           `json:"notice_url,omitempty"`
}

// Result is the outcome of verifying one citation.
type Result struct {
	Exists        bool              `json:"exists"`
	Confidence    float64           `json:"confidence"` // Heuristic in [0,1], not a calibrated probability
	Source        SourceTag         `json:"source"`
	Work          *Work             `json:"work,omitempty"`
	Discrepancies []Discrepancy     `json:"discrepancies"`
	Retraction    *RetractionSignal `json:"retraction,omitempty"`
	Status        Status            `json:"status"`
}

// LegacyResult is the presentation collaborator's older response shape.
type LegacyResult struct {
	IsRetracted       bool              `json:"isRetracted"`
	RetractionDetails *RetractionSignal `json:"retractionDetails,omitempty"`
	Validation        LegacyValidation  `json:"validation"`
}

// LegacyValidation is the nested validation block of LegacyResult.
type LegacyValidation struct {
	Exists        bool          `json:"exists"`
	Confidence    float64       `json:"confidence"`
	Status        Status        `json:"status"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// Legacy converts a Result to the legacy presentation shape.
func (r Result) Legacy() LegacyResult {
	return LegacyResult{
		IsRetracted:       r.Status == StatusRetracted,
		RetractionDetails: r.Retraction,
		Validation: LegacyValidation{
			Exists:        r.Exists,
			Confidence:    r.Confidence,
			Status:        r.Status,
			Discrepancies: r.Discrepancies,
		},
	}
}
