package model

import "time"

// Role is the visitor's self-declared relationship to the hemp industry.
// It selects which advocacy email template they start from.
type Role string

const (
	RoleBusinessOwner Role = "business_owner"
	RoleEmployee      Role = "employee"
	RoleConsumer      Role = "consumer"
	RoleMedicalUser   Role = "medical_user"
	RoleVeteran       Role = "veteran"
)

// Valid reports whether r is one of the five recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBusinessOwner, RoleEmployee, RoleConsumer, RoleMedicalUser, RoleVeteran:
		return true
	}
	return false
}

// User represents a campaign participant.
//
// Email is UNIQUE in storage. Registration is idempotent: submitting the
// form again with a known email returns the existing row unchanged, so a
// visitor coming back never sees a "duplicate account" error.
//
// State is derived from the zip lookup when available; the optional profile
// and consent fields come from the story/digest opt-in part of the form.
type User struct {
	ID           string `json:"id"           db:"id"`
	Email        string `json:"email"        db:"email"`
	ZipCode      string `json:"zipCode"      db:"zip_code"`
	Role         Role   `json:"role"         db:"role"`
	State        string `json:"state,omitempty"        db:"state"`
	Name         string `json:"name,omitempty"         db:"name"`
	Phone        string `json:"phone,omitempty"        db:"phone"`
	BusinessName string `json:"businessName,omitempty" db:"business_name"`

	StoryOptIn        bool `json:"storyOptIn"        db:"story_opt_in"`
	WeeklyDigestOptIn bool `json:"weeklyDigestOptIn" db:"weekly_digest_opt_in"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
