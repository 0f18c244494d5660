// Package enrollment implements the signup-to-dashboard state machine:
// credential submission, email verification with one-time codes, the resend
// cooldown, the onboarding questionnaire, and the access guard that routes a
// session to login, the resumable enrollment step, or the dashboard.
//
// Step position is always re-derived from persisted state, never trusted
// from the client, so reloads and duplicate tabs cannot skip or repeat
// committed transitions.
package enrollment
