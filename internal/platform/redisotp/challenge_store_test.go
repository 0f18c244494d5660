package redisotp_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interna-hq/interna-api/internal/platform/redisotp"
	"github.com/interna-hq/interna-api/internal/store"
)

func newTestStore(t *testing.T) (*redisotp.ChallengeStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := redisotp.Config{
		CodeTTL:        10 * time.Minute,
		ResendCooldown: 60 * time.Second,
		MaxAttempts:    5,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return redisotp.NewChallengeStore(client, cfg, logger), mr
}

func TestIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Issue(ctx, "sara@example.com", "123456"))
	require.NoError(t, s.Verify(ctx, "sara@example.com", "123456"))

	// Consumed on success; a second use of the same code is gone.
	err := s.Verify(ctx, "sara@example.com", "123456")
	assert.ErrorIs(t, err, store.ErrChallengeNotFound)
}

func TestVerifyWrongCode(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Issue(ctx, "sara@example.com", "123456"))

	err := s.Verify(ctx, "sara@example.com", "654321")
	assert.ErrorIs(t, err, store.ErrCodeMismatch)

	// A wrong guess does not consume the challenge.
	require.NoError(t, s.Verify(ctx, "sara@example.com", "123456"))
}

func TestVerifyEmailNormalization(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Issue(ctx, "Sara@Example.COM", "123456"))
	require.NoError(t, s.Verify(ctx, " sara@example.com ", "123456"))
}

func TestAttemptBudget(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Issue(ctx, "sara@example.com", "123456"))

	for i := 0; i < 5; i++ {
		err := s.Verify(ctx, "sara@example.com", "000000")
		assert.ErrorIs(t, err, store.ErrCodeMismatch)
	}

	// The sixth attempt burns the challenge.
	err := s.Verify(ctx, "sara@example.com", "000000")
	assert.ErrorIs(t, err, store.ErrTooManyAttempts)

	// Even the right code is dead now.
	err = s.Verify(ctx, "sara@example.com", "123456")
	assert.ErrorIs(t, err, store.ErrChallengeNotFound)
}

func TestResendCooldown(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.Issue(ctx, "sara@example.com", "111111"))

	// A second issuance inside the cooldown is throttled and must not
	// supersede the armed code.
	err := s.Issue(ctx, "sara@example.com", "222222")
	assert.ErrorIs(t, err, store.ErrIssueThrottled)
	require.NoError(t, s.Verify(ctx, "sara@example.com", "111111"))

	remaining, err := s.ResendRemaining(ctx, "sara@example.com")
	require.NoError(t, err)
	assert.Greater(t, remaining, 50*time.Second)
	assert.LessOrEqual(t, remaining, 60*time.Second)

	// Once the cooldown lapses, issuance works again.
	mr.FastForward(61 * time.Second)
	require.NoError(t, s.Issue(ctx, "sara@example.com", "333333"))
}

func TestReissueSupersedes(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.Issue(ctx, "sara@example.com", "111111"))

	// Burn some attempt budget against the first code.
	for i := 0; i < 3; i++ {
		_ = s.Verify(ctx, "sara@example.com", "000000")
	}

	mr.FastForward(61 * time.Second)
	require.NoError(t, s.Issue(ctx, "sara@example.com", "222222"))

	// The old code is dead and the attempt counter was reset.
	err := s.Verify(ctx, "sara@example.com", "111111")
	assert.ErrorIs(t, err, store.ErrCodeMismatch)
	require.NoError(t, s.Verify(ctx, "sara@example.com", "222222"))
}

func TestCodeExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.Issue(ctx, "sara@example.com", "123456"))

	mr.FastForward(11 * time.Minute)
	err := s.Verify(ctx, "sara@example.com", "123456")
	assert.ErrorIs(t, err, store.ErrChallengeNotFound)
}

func TestResendRemainingWithoutChallenge(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	remaining, err := s.ResendRemaining(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Zero(t, remaining)
}
