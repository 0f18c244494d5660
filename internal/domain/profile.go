package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Field is the professional focus a user picks during onboarding.
type Field string

// Possible field values
const (
	FieldFrontend  Field = "frontend"
	FieldBackend   Field = "backend"
	FieldFullstack Field = "fullstack"
	FieldMobile    Field = "mobile"
	FieldData      Field = "data"
	FieldDesign    Field = "design"
)

// ExperienceLevel is the self-reported expertise of a user.
type ExperienceLevel string

// Possible experience level values
const (
	ExperienceStudent   ExperienceLevel = "student"
	ExperienceFreshGrad ExperienceLevel = "fresh_grad"
	ExperienceJunior    ExperienceLevel = "junior"
)

// Regions is the fixed catalog offered at signup.
var Regions = []string{
	"North America",
	"South America",
	"Europe",
	"Africa",
	"Asia",
	"Oceania",
	"Middle East",
}

// Interests is the fixed catalog of onboarding interest tags.
var Interests = []string{
	"React", "Next.js", "Node.js", "Python", "AI/ML",
	"UI/UX", "DevOps", "Cybersecurity", "Blockchain",
	"Game Dev", "Cloud", "Mobile Apps",
}

// Common validation errors for Profile
var (
	ErrEmptyProfileUserID  = errors.New("profile user ID cannot be empty")
	ErrEmptyFullName       = errors.New("full name must be at least 2 characters")
	ErrUnknownRegion       = errors.New("region is not in the catalog")
	ErrUnknownField        = errors.New("field is not in the catalog")
	ErrUnknownExperience   = errors.New("experience level is not in the catalog")
	ErrNoInterestsSelected = errors.New("at least one interest must be selected")
	ErrUnknownInterest     = errors.New("interest is not in the catalog")
)

// Profile is the one-per-account record of identity fields and onboarding
// answers. OnboardingCompleted transitions exactly once, false to true, when
// the final enrollment step succeeds; the enrollment flow never reverts it.
type Profile struct {
	UserID              uuid.UUID       `json:"user_id"`
	FullName            string          `json:"full_name"`
	Region              string          `json:"region"`
	Field               Field           `json:"field,omitempty"`
	ExperienceLevel     ExperienceLevel `json:"experience_level,omitempty"`
	Interests           []string        `json:"interests,omitempty"`
	OnboardingCompleted bool            `json:"onboarding_completed"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// NewProfile creates the profile seed written at signup time, before the
// onboarding questionnaire has been answered.
func NewProfile(userID uuid.UUID, fullName, region string) (*Profile, error) {
	profile := &Profile{
		UserID:    userID,
		FullName:  fullName,
		Region:    region,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
// Onboarding answers are only validated once present; the signup-time seed
// carries just the identity fields.
func (p *Profile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}

	if len(p.FullName) < 2 {
		return ErrEmptyFullName
	}

	if !ValidRegion(p.Region) {
		return ErrUnknownRegion
	}

	if p.Field != "" && !ValidField(p.Field) {
		return ErrUnknownField
	}

	if p.ExperienceLevel != "" && !ValidExperienceLevel(p.ExperienceLevel) {
		return ErrUnknownExperience
	}

	if p.OnboardingCompleted && len(p.Interests) == 0 {
		return ErrNoInterestsSelected
	}

	return nil
}

// CompleteOnboarding records the questionnaire answers and flips the
// completion flag. Returns an error if any answer falls outside the fixed
// catalogs or no interest was selected.
func (p *Profile) CompleteOnboarding(field Field, level ExperienceLevel, interests []string) error {
	if !ValidField(field) {
		return ErrUnknownField
	}
	if !ValidExperienceLevel(level) {
		return ErrUnknownExperience
	}
	if len(interests) == 0 {
		return ErrNoInterestsSelected
	}
	for _, interest := range interests {
		if !ValidInterest(interest) {
			return ErrUnknownInterest
		}
	}

	p.Field = field
	p.ExperienceLevel = level
	p.Interests = interests
	p.OnboardingCompleted = true
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// ValidRegion reports whether the region is in the fixed catalog.
func ValidRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

// ValidField reports whether the field is in the fixed catalog.
func ValidField(field Field) bool {
	switch field {
	case FieldFrontend, FieldBackend, FieldFullstack, FieldMobile, FieldData, FieldDesign:
		return true
	default:
		return false
	}
}

// ValidExperienceLevel reports whether the level is in the fixed catalog.
func ValidExperienceLevel(level ExperienceLevel) bool {
	switch level {
	case ExperienceStudent, ExperienceFreshGrad, ExperienceJunior:
		return true
	default:
		return false
	}
}

// ValidInterest reports whether the interest tag is in the fixed catalog.
func ValidInterest(interest string) bool {
	for _, i := range Interests {
		if i == interest {
			return true
		}
	}
	return false
}
