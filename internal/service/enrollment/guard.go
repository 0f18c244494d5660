package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/store"
)

// Route is where the guard sends a request.
type Route string

// Possible routing decisions.
const (
	// RouteLogin: no session, or the session resolves to no account.
	RouteLogin Route = "login"

	// RouteEnrollment: the account exists but the flow is unfinished; resume
	// at the decision's Step.
	RouteEnrollment Route = "enrollment"

	// RouteDashboard: verified and fully onboarded.
	RouteDashboard Route = "dashboard"
)

// Decision is the guard's verdict for one request. Step is set only for
// RouteEnrollment.
type Decision struct {
	Route Route                 `json:"route"`
	Step  domain.EnrollmentStep `json:"step,omitempty"`
}

// Evaluate decides where a session belongs. It is a pure read: deterministic
// for a fixed (session, account, profile) triple and free of side effects, so
// it can run on every navigation. The zero UUID stands for "no session".
//
// An account that went missing under a live token routes back to login rather
// than erroring, so stale sessions degrade instead of breaking.
func (s *Service) Evaluate(ctx context.Context, userID uuid.UUID) (Decision, error) {
	if userID == uuid.Nil {
		return Decision{Route: RouteLogin}, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return Decision{Route: RouteLogin}, nil
		}
		return Decision{}, fmt.Errorf("failed to load account for guard: %w", err)
	}

	step, err := s.stepFor(ctx, user)
	if err != nil {
		return Decision{}, err
	}

	if step == domain.StepEnteredDashboard {
		return Decision{Route: RouteDashboard}, nil
	}
	return Decision{Route: RouteEnrollment, Step: step}, nil
}
