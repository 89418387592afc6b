// Package model defines the data structures used throughout the application.
package model

import "time"

// Chamber identifies which body of Congress a lawmaker sits in.
type Chamber string

const (
	ChamberSenate Chamber = "senate"
	ChamberHouse  Chamber = "house"
)

// Stance classifies a lawmaker's public position on the hemp ban.
// It is curated by campaign staff, never derived from the lookup provider,
// so re-syncing a lawmaker must leave it untouched.
type Stance string

const (
	StanceChampion     Stance = "champion"
	StanceOpposed      Stance = "opposed"
	StanceBanSupporter Stance = "ban_supporter"
	StanceUnknown      Stance = "unknown"
)

// Valid reports whether s is one of the recognized stance values.
func (s Stance) Valid() bool {
	switch s {
	case StanceChampion, StanceOpposed, StanceBanSupporter, StanceUnknown:
		return true
	}
	return false
}

// Lawmaker represents one federal senator or representative.
//
// ExternalID is the stable key derived from (state, chamber, normalized
// name) that lets us recognize the same person across independent zip
// lookups. It carries a UNIQUE constraint in storage, which is the final
// backstop against duplicate inserts from concurrent lookups.
//
// District is set only for house members (senators represent the whole
// state). OfficeAddresses holds the provider's raw address payload as JSON;
// we store it verbatim rather than modeling a structure we never query.
type Lawmaker struct {
	ID             string  `json:"id"             db:"id"`
	ExternalID     string  `json:"externalId"     db:"external_id"`
	Name           string  `json:"name"           db:"name"`
	Chamber        Chamber `json:"chamber"        db:"chamber"`
	State          string  `json:"state"          db:"state"`
	District       string  `json:"district,omitempty" db:"district"`
	Party          string  `json:"party,omitempty"    db:"party"`
	PhotoURL       string  `json:"photoUrl,omitempty" db:"photo_url"`
	Email          string  `json:"email,omitempty"    db:"email"`
	Phone          string  `json:"phone,omitempty"    db:"phone"`
	ContactFormURL string  `json:"contactFormUrl,omitempty" db:"contact_form_url"`
	OfficeAddresses string `json:"officeAddresses,omitempty" db:"office_addresses"`

	// Campaign-curated fields. Defaults apply on first sighting; staff fill
	// them in later through the admin endpoints.
	HempStance          Stance  `json:"hempStance"          db:"hemp_stance"`
	AlcoholFundingTotal float64 `json:"alcoholFundingTotal" db:"alcohol_funding_total"`
	AlcoholFundingCycle string  `json:"alcoholFundingCycle,omitempty" db:"alcohol_funding_cycle"`
	KeyQuote            string  `json:"keyQuote,omitempty"  db:"key_quote"`
	QuoteSourceURL      string  `json:"quoteSourceUrl,omitempty" db:"quote_source_url"`
	Featured            bool    `json:"featured"            db:"featured"`

	LastSyncedAt time.Time `json:"lastSyncedAt" db:"last_synced_at"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    db:"updated_at"`
}
