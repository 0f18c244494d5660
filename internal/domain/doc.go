// Package domain contains the core entities of the Interna platform:
// accounts, profiles, enrollment steps, and simulation project records.
// Entities validate themselves and expose the single-direction state
// transitions the enrollment flow depends on (email verification and
// onboarding completion both flip exactly once).
package domain
