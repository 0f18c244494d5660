package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestDeriveEnrollmentStep(t *testing.T) {
	completed := &Profile{
		UserID:              uuid.New(),
		FullName:            "Sara Ahmed",
		Region:              "Europe",
		Field:               FieldFrontend,
		ExperienceLevel:     ExperienceJunior,
		Interests:           []string{"React"},
		OnboardingCompleted: true,
	}
	partialField := &Profile{
		UserID:   uuid.New(),
		FullName: "Sara Ahmed",
		Region:   "Europe",
	}
	partialLevel := &Profile{
		UserID:   uuid.New(),
		FullName: "Sara Ahmed",
		Region:   "Europe",
		Field:    FieldBackend,
	}
	partialInterests := &Profile{
		UserID:          uuid.New(),
		FullName:        "Sara Ahmed",
		Region:          "Europe",
		Field:           FieldBackend,
		ExperienceLevel: ExperienceStudent,
	}

	cases := []struct {
		name          string
		emailVerified bool
		profile       *Profile
		want          EnrollmentStep
	}{
		{"unverified email always resumes at verification", false, completed, StepVerifyEmail},
		{"unverified with no profile", false, nil, StepVerifyEmail},
		{"verified with missing profile seed", true, nil, StepField},
		{"verified with empty answers", true, partialField, StepField},
		{"field answered, level missing", true, partialLevel, StepExperience},
		{"level answered, interests missing", true, partialInterests, StepInterests},
		{"fully onboarded", true, completed, StepEnteredDashboard},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveEnrollmentStep(tc.emailVerified, tc.profile)
			if got != tc.want {
				t.Errorf("DeriveEnrollmentStep(%v, profile) = %s, want %s",
					tc.emailVerified, got, tc.want)
			}
		})
	}
}

func TestValidEnrollmentStep(t *testing.T) {
	for _, step := range []EnrollmentStep{
		StepCredentials, StepVerifyEmail, StepField,
		StepExperience, StepInterests, StepEnteredDashboard,
	} {
		if !ValidEnrollmentStep(step) {
			t.Errorf("Expected %s to be a valid step", step)
		}
	}

	if ValidEnrollmentStep("payment") {
		t.Error("Expected unknown step to be invalid")
	}
	if ValidEnrollmentStep("") {
		t.Error("Expected empty step to be invalid")
	}
}
