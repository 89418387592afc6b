// Package service contains the business logic layer: zip lookup and
// lawmaker reconciliation, email drafting and dispatch, user registration,
// stats polling, and the deadline countdown. Services speak in domain types
// and apperror values — they know nothing about HTTP.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dontbanhemp/action-server/internal/apperror"
	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

// EmailTemplate is a drafted subject/body pair. The visitor can edit both
// before sending.
type EmailTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// nameSuffixes are generational suffixes that should not be mistaken for a
// last name. Checked with any trailing period stripped, so "Jr" and "Jr."
// both match.
var nameSuffixes = map[string]bool{
	"Jr":  true,
	"Sr":  true,
	"II":  true,
	"III": true,
	"IV":  true,
	"V":   true,
}

// lastName extracts the surname from a full name: the final whitespace
// token, or the second-to-last when the final token is a generational
// suffix. A single-token name is used as-is.
func lastName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}

	last := parts[len(parts)-1]
	if nameSuffixes[strings.TrimSuffix(last, ".")] {
		return parts[len(parts)-2]
	}
	return last
}

// GenerateEmail produces the pre-drafted advocacy email for one role and
// one lawmaker. It is a pure function of its inputs: same role, lawmaker,
// and display name always produce byte-identical output, so callers can
// re-render freely.
//
// displayName signs the letter; when empty the signature falls back to
// "A Concerned Constituent" (or "A Concerned Veteran" for the veteran
// role).
func GenerateEmail(role model.Role, lawmaker *model.Lawmaker, displayName string) (*EmailTemplate, error) {
	if lawmaker == nil || lawmaker.Name == "" || lawmaker.State == "" {
		return nil, apperror.ValidationFailed("lawmaker",
			"lawmaker name and state are required for email template generation")
	}
	if !role.Valid() {
		return nil, apperror.ValidationFailed("role", fmt.Sprintf("unknown role %q", role))
	}

	honorific := "Representative"
	if lawmaker.Chamber == model.ChamberSenate {
		honorific = "Senator"
	}
	greeting := fmt.Sprintf("Dear %s %s,", honorific, lastName(lawmaker.Name))

	switch role {
	case model.RoleBusinessOwner:
		return &EmailTemplate{
			Subject: "Urgent: Protect Hemp Businesses - Oppose the 2026 Hemp Ban",
			Body: greeting + `

I am writing as a hemp business owner in ` + lawmaker.State + ` to urge you to oppose the federal hemp ban scheduled to take effect on November 12, 2026.

This ban will devastate our industry and destroy thousands of American jobs. Our business, like many others, operates legally and responsibly, providing safe products to consumers while contributing to our local economy.

The hemp industry supports over 100,000 jobs nationwide and generates billions in economic activity. A blanket ban ignores the legitimate uses of hemp and punishes law-abiding businesses for the actions of bad actors.

Instead of prohibition, we need:
- Clear, science-based regulations
- Enforcement against illegal products
- Support for legitimate hemp businesses

I urge you to support legislation that protects legal hemp commerce and the livelihoods of American entrepreneurs.

` + signature("Sincerely", displayName, false),
		}, nil

	case model.RoleEmployee:
		return &EmailTemplate{
			Subject: "My Job is at Risk - Please Oppose the Hemp Ban",
			Body: greeting + `

I am writing as an employee in the hemp industry in ` + lawmaker.State + ` to ask for your help in stopping the federal hemp ban set for November 12, 2026.

My job—and the jobs of thousands of hardworking Americans—will disappear if this ban takes effect. Many of us have families to support and bills to pay. The hemp industry has provided stable employment and career opportunities in our communities.

This ban doesn't just hurt businesses; it hurts working people. We need our representatives to stand up for American workers and find solutions that protect jobs while addressing any legitimate concerns.

Please support legislation that preserves legal hemp commerce and protects American jobs.

` + signature("Thank you", displayName, false),
		}, nil

	case model.RoleConsumer:
		return &EmailTemplate{
			Subject: "Protect Consumer Choice - Oppose the Hemp Ban",
			Body: greeting + `

I am writing as a constituent in ` + lawmaker.State + ` to express my strong opposition to the federal hemp ban scheduled for November 12, 2026.

As an adult consumer, I should have the right to make my own informed choices about legal hemp products. This ban is government overreach that treats responsible adults like children.

Hemp products have been legal and available for years. Many Americans use them safely and responsibly for various purposes. A blanket ban punishes millions of law-abiding citizens for the actions of a few bad actors.

We need smart regulation, not prohibition. Please support policies that:
- Protect consumer freedom
- Ensure product safety through testing and standards
- Target illegal operators without banning an entire industry

I urge you to stand up for personal freedom and oppose this ban.

` + signature("Respectfully", displayName, false),
		}, nil

	case model.RoleMedicalUser:
		return &EmailTemplate{
			Subject: "This Ban Threatens My Health - Please Help",
			Body: greeting + `

I am writing as someone who relies on legal hemp products for wellness purposes. The federal hemp ban scheduled for November 12, 2026, will take away products that have genuinely helped me.

Many Americans like me have found relief through legal hemp products when other options have failed or caused unwanted side effects. We are not criminals—we are people seeking natural alternatives for our health and well-being.

This ban will force people back to pharmaceuticals that may not work as well, cost more, or cause adverse effects. It ignores the experiences of thousands who have benefited from hemp products.

Please support legislation that:
- Allows continued access to legal hemp products
- Implements safety standards and testing
- Respects the choices of adults seeking natural wellness options

This is about more than business—it's about people's health and quality of life.

` + signature("Sincerely", displayName, false),
		}, nil

	case model.RoleVeteran:
		return &EmailTemplate{
			Subject: "Veteran's Appeal - Don't Take Away Our Hemp Access",
			Body: greeting + `

I am a veteran writing to urge you to oppose the federal hemp ban set for November 12, 2026.

Many veterans have turned to legal hemp products as an alternative for managing stress, sleep issues, and other service-related challenges. After serving our country, we deserve the freedom to choose what works for our wellness—not to have the government take away legal options that have helped us.

Veterans face unique challenges, and hemp products have provided relief for many of us when traditional options fell short. This ban shows a lack of understanding of what veterans need and use.

I ask you to:
- Oppose the blanket ban on hemp products
- Support veterans' access to legal wellness alternatives
- Push for sensible regulation instead of prohibition

We served our country. We're asking you to serve us by protecting our freedom of choice.

` + signature("Respectfully", displayName, true),
		}, nil
	}

	// Unreachable: role.Valid() covered every case above.
	return nil, apperror.ValidationFailed("role", fmt.Sprintf("unknown role %q", role))
}

// signature builds the sign-off block. Veterans sign with their service
// noted; anonymous veterans get the veteran-specific fallback.
func signature(signoff, displayName string, veteran bool) string {
	if displayName != "" {
		if veteran {
			return signoff + ",\n" + displayName + "\nVeteran"
		}
		return signoff + ",\n" + displayName
	}
	if veteran {
		return signoff + ",\nA Concerned Veteran"
	}
	return signoff + ",\nA Concerned Constituent"
}

// TemplateService renders a draft for a stored lawmaker. It exists so the
// frontend's email modal can ask the server for the same bytes
// GenerateEmail produces without duplicating template text client-side.
type TemplateService struct {
	lawmakers repository.LawmakerRepository
}

// NewTemplateService creates a TemplateService.
func NewTemplateService(lawmakers repository.LawmakerRepository) *TemplateService {
	return &TemplateService{lawmakers: lawmakers}
}

// Render looks up the lawmaker and generates the draft for the given role.
func (s *TemplateService) Render(ctx context.Context, role model.Role, lawmakerID, displayName string) (*EmailTemplate, error) {
	lawmakerID = strings.TrimSpace(lawmakerID)
	if lawmakerID == "" {
		return nil, apperror.ValidationFailed("lawmakerId", "lawmaker ID is required")
	}

	lawmaker, err := s.lawmakers.GetByID(ctx, lawmakerID)
	if err != nil {
		return nil, err
	}

	return GenerateEmail(role, lawmaker, strings.TrimSpace(displayName))
}
