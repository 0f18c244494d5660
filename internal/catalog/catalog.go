// Package catalog holds the static set of predefined simulation tasks.
// Progress records reference these by id; ids removed from the catalog are
// silently dropped from user-facing listings.
package catalog

import "github.com/interna-hq/interna-api/internal/domain"

// Task is a predefined simulation a user can enter from the dashboard.
type Task struct {
	ID            string
	Title         string
	Description   string
	Field         domain.Field
	Difficulty    string
	Level         int
	Duration      string
	Tools         []string
	ClientPersona string
	ClientMood    string
}

// FieldLabels maps field ids to their display labels.
var FieldLabels = map[domain.Field]string{
	domain.FieldFrontend:  "Frontend",
	domain.FieldBackend:   "Backend",
	domain.FieldFullstack: "Fullstack",
	domain.FieldMobile:    "Mobile",
	domain.FieldData:      "Data",
	domain.FieldDesign:    "Design",
}

// Tasks is the predefined task catalog, one entry point per field plus a few
// higher-level follow-ups.
var Tasks = []Task{
	{
		ID:            "landing-page-rescue",
		Title:         "Landing Page Rescue",
		Description:   "A bakery owner's landing page looks broken on phones. Rebuild the hero section so it works on every screen size.",
		Field:         domain.FieldFrontend,
		Difficulty:    "easy",
		Level:         1,
		Duration:      "2-3 hours",
		Tools:         []string{"HTML", "CSS", "React"},
		ClientPersona: "Small bakery owner with no technical background",
		ClientMood:    "Friendly but impatient",
	},
	{
		ID:            "orders-api-cleanup",
		Title:         "Orders API Cleanup",
		Description:   "An online store's orders endpoint times out under load. Profile the queries and fix the slow path.",
		Field:         domain.FieldBackend,
		Difficulty:    "medium",
		Level:         2,
		Duration:      "3-4 hours",
		Tools:         []string{"Node.js", "PostgreSQL"},
		ClientPersona: "Startup CTO who reads every pull request",
		ClientMood:    "Demanding",
	},
	{
		ID:            "booking-flow-mvp",
		Title:         "Booking Flow MVP",
		Description:   "A gym wants members to book classes online. Ship a minimal end-to-end booking flow.",
		Field:         domain.FieldFullstack,
		Difficulty:    "medium",
		Level:         2,
		Duration:      "4-6 hours",
		Tools:         []string{"Next.js", "Node.js", "PostgreSQL"},
		ClientPersona: "Gym manager who keeps adding requirements",
		ClientMood:    "Vague",
	},
	{
		ID:            "push-notification-fix",
		Title:         "Push Notification Fix",
		Description:   "Users of a delivery app stopped receiving push notifications after the last release. Find and fix the regression.",
		Field:         domain.FieldMobile,
		Difficulty:    "hard",
		Level:         3,
		Duration:      "3-5 hours",
		Tools:         []string{"React Native", "Firebase"},
		ClientPersona: "Product manager under pressure from support tickets",
		ClientMood:    "Stressed",
	},
	{
		ID:            "churn-report",
		Title:         "Churn Report",
		Description:   "A subscription service wants to know why customers leave. Build a churn analysis from their raw export.",
		Field:         domain.FieldData,
		Difficulty:    "medium",
		Level:         2,
		Duration:      "3-4 hours",
		Tools:         []string{"Python", "Pandas", "SQL"},
		ClientPersona: "Marketing lead who distrusts dashboards",
		ClientMood:    "Skeptical",
	},
	{
		ID:            "onboarding-redesign",
		Title:         "Onboarding Redesign",
		Description:   "A fintech app loses half its signups on the KYC screens. Redesign the onboarding flow to cut drop-off.",
		Field:         domain.FieldDesign,
		Difficulty:    "medium",
		Level:         2,
		Duration:      "2-4 hours",
		Tools:         []string{"Figma"},
		ClientPersona: "Founder who sketches ideas on napkins",
		ClientMood:    "Enthusiastic",
	},
}

// ByID looks up a task in the static catalog.
// Returns the task and true when found.
func ByID(id string) (Task, bool) {
	for _, t := range Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
