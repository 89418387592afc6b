package civic

// Response is the representatives payload returned by the Google Civic
// Information API. Offices index into Officials via OfficialIndices.
type Response struct {
	NormalizedInput *NormalizedInput `json:"normalizedInput,omitempty"`
	Offices         []Office         `json:"offices,omitempty"`
	Officials       []Official       `json:"officials,omitempty"`
}

// NormalizedInput is the provider's canonical reading of the queried
// address. State is the two-letter postal code when the address resolved.
type NormalizedInput struct {
	Line1 string `json:"line1,omitempty"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Zip   string `json:"zip,omitempty"`
}

// Office is one elected office, e.g. "United States Senate" or
// "United States House of Representatives CA-33". DivisionID is an OCD
// identifier like "ocd-division/country:us/state:ca/cd:33".
type Office struct {
	Name            string   `json:"name"`
	DivisionID      string   `json:"divisionId"`
	Levels          []string `json:"levels,omitempty"`
	Roles           []string `json:"roles,omitempty"`
	OfficialIndices []int    `json:"officialIndices,omitempty"`
}

// Official is one office holder.
type Official struct {
	Name     string          `json:"name"`
	Party    string          `json:"party,omitempty"`
	Phones   []string        `json:"phones,omitempty"`
	Emails   []string        `json:"emails,omitempty"`
	PhotoURL string          `json:"photoUrl,omitempty"`
	URLs     []string        `json:"urls,omitempty"`
	Address  []OfficeAddress `json:"address,omitempty"`
}

// OfficeAddress is one office mailing address as the provider reports it.
type OfficeAddress struct {
	Line1 string `json:"line1,omitempty"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Zip   string `json:"zip,omitempty"`
}
