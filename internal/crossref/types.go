package crossref

// worksResponse is the envelope for a single-work lookup. The work itself is
// nested under "message".
type worksResponse struct {
	Message crossrefWork `json:"message"`
}

// searchResponse is the envelope for a bibliographic search.
type searchResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

// crossrefWork is the raw CrossRef work payload, limited to the fields the
// mapper consumes.
type crossrefWork struct {
	DOI            string           `json:"DOI"`
	Title          []string         `json:"title"`
	Author         []crossrefAuthor `json:"author"`
	ContainerTitle []string         `json:"container-title"`
	Publisher      string           `json:"publisher"`
	Type           string           `json:"type"`
	Volume         string           `json:"volume"`
	Issue          string           `json:"issue"`
	Page           string           `json:"page"`

	PublishedPrint  *partedDate `json:"published-print"`
	PublishedOnline *partedDate `json:"published-online"`
	Issued          *partedDate `json:"issued"`
	Created         *partedDate `json:"created"`

	UpdateTo []crossrefUpdate `json:"update-to"`
}

// crossrefAuthor carries name parts; "name" is the composed form some
// records use instead of given/family.
type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

// partedDate is CrossRef's date-parts encoding: [[year, month, day]] with
// trailing parts optional.
type partedDate struct {
	DateParts [][]int `json:"date-parts"`
}

// crossrefUpdate is an "update-to" entry (retraction and correction notices).
type crossrefUpdate struct {
	DOI     string      `json:"DOI"`
	Type    string      `json:"type"`
	Label   string      `json:"label"`
	Updated *partedDate `json:"updated"`
}
