package enrollment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/service/enrollment"
)

func TestEvaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("no session routes to login", func(t *testing.T) {
		env := newTestEnv(t)

		decision, err := env.svc.Evaluate(ctx, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, enrollment.RouteLogin, decision.Route)
		assert.Empty(t, decision.Step)
	})

	t.Run("stale session with a missing account routes to login", func(t *testing.T) {
		env := newTestEnv(t)

		decision, err := env.svc.Evaluate(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, enrollment.RouteLogin, decision.Route)
	})

	t.Run("unverified account resumes at email verification", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "sara@example.com", false)

		decision, err := env.svc.Evaluate(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, enrollment.RouteEnrollment, decision.Route)
		assert.Equal(t, domain.StepVerifyEmail, decision.Step)
	})

	t.Run("verified but unonboarded account resumes at the questionnaire", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "sara@example.com", true)

		decision, err := env.svc.Evaluate(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, enrollment.RouteEnrollment, decision.Route)
		assert.Equal(t, domain.StepField, decision.Step)
	})

	t.Run("fully onboarded account routes to the dashboard", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "sara@example.com", true)

		_, err := env.svc.CompleteOnboarding(ctx, user.ID,
			domain.FieldFullstack, domain.ExperienceFreshGrad, []string{"Node.js"})
		require.NoError(t, err)

		decision, err := env.svc.Evaluate(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, enrollment.RouteDashboard, decision.Route)
		assert.Empty(t, decision.Step)
	})

	t.Run("evaluation is deterministic for fixed state", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.seedUser(t, "sara@example.com", true)

		first, err := env.svc.Evaluate(ctx, user.ID)
		require.NoError(t, err)
		second, err := env.svc.Evaluate(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
