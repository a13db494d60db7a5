package openalex

// searchResponse is the envelope for a works search.
type searchResponse struct {
	Results []openalexWork `json:"results"`
}

// openalexWork is the raw OpenAlex work payload, limited to the fields the
// mapper consumes. Single-work lookups return this shape directly, with no
// envelope.
type openalexWork struct {
	DOI             string `json:"doi"` // URL form: https://doi.org/10....
	Title           string `json:"title"`
	DisplayName     string `json:"display_name"`
	PublicationYear int    `json:"publication_year"`
	PublicationDate string `json:"publication_date"`
	Type            string `json:"type"`
	IsRetracted     bool   `json:"is_retracted"`

	Authorships []authorship `json:"authorships"`

	PrimaryLocation *location `json:"primary_location"`

	Biblio struct {
		Volume    string `json:"volume"`
		Issue     string `json:"issue"`
		FirstPage string `json:"first_page"`
		LastPage  string `json:"last_page"`
	} `json:"biblio"`
}

// authorship wraps an author with their position metadata.
type authorship struct {
	Author struct {
		DisplayName string `json:"display_name"`
	} `json:"author"`
}

// location describes where a work is hosted (journal, repository).
type location struct {
	Source *struct {
		DisplayName          string `json:"display_name"`
		HostOrganizationName string `json:"host_organization_name"`
	} `json:"source"`
}
