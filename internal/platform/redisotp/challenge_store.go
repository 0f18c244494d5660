// Package redisotp implements the one-time-code challenge store on redis.
// Challenges, guess counters, and the resend cooldown are all TTL-scoped
// keys, so expiry and throttling are enforced server-side rather than
// trusted to the client's countdown.
package redisotp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/platform/logger"
	"github.com/interna-hq/interna-api/internal/store"
)

// ChallengeStore implements store.ChallengeStore on a redis client.
type ChallengeStore struct {
	redis          *redis.Client
	codeTTL        time.Duration
	resendCooldown time.Duration
	maxAttempts    int
	logger         *slog.Logger
}

// Config tunes challenge lifetime and throttling.
type Config struct {
	// CodeTTL is how long an issued code stays valid.
	CodeTTL time.Duration
	// ResendCooldown is the seed of the client-visible resend countdown.
	ResendCooldown time.Duration
	// MaxAttempts is the guess budget per challenge before it is
	// invalidated.
	MaxAttempts int
}

// NewChallengeStore creates a redis-backed challenge store.
func NewChallengeStore(client *redis.Client, cfg Config, log *slog.Logger) *ChallengeStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ChallengeStore{
		redis:          client,
		codeTTL:        cfg.CodeTTL,
		resendCooldown: cfg.ResendCooldown,
		maxAttempts:    cfg.MaxAttempts,
		logger:         log.With(slog.String("component", "challenge_store")),
	}
}

// Ensure ChallengeStore implements store.ChallengeStore interface
var _ store.ChallengeStore = (*ChallengeStore)(nil)

// Issue implements store.ChallengeStore.Issue
// Writing the code key unconditionally supersedes any previous challenge
// for the email; the old code stops verifying the moment a new one exists.
func (s *ChallengeStore) Issue(ctx context.Context, email, code string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	email = domain.NormalizeEmail(email)

	// Cooldown check first, so hammering the endpoint cannot reset codes.
	remaining, err := s.ResendRemaining(ctx, email)
	if err != nil {
		return err
	}
	if remaining > 0 {
		log.Debug("code issuance throttled",
			slog.Duration("remaining", remaining))
		return store.ErrIssueThrottled
	}

	// Codes are stored hashed; a redis dump never leaks usable codes.
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	if err := s.redis.Set(ctx, codeKey(email), string(hash), s.codeTTL).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	if err := s.redis.Del(ctx, attemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to reset attempt counter: %w", err)
	}
	if err := s.redis.Set(ctx, cooldownKey(email), "1", s.resendCooldown).Err(); err != nil {
		return fmt.Errorf("failed to arm resend cooldown: %w", err)
	}

	log.Info("challenge issued",
		slog.Duration("ttl", s.codeTTL))
	return nil
}

// Verify implements store.ChallengeStore.Verify
func (s *ChallengeStore) Verify(ctx context.Context, email, code string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	email = domain.NormalizeEmail(email)

	hash, err := s.redis.Get(ctx, codeKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.ErrChallengeNotFound
		}
		return fmt.Errorf("failed to load challenge: %w", err)
	}

	attempts, err := s.redis.Incr(ctx, attemptsKey(email)).Result()
	if err != nil {
		return fmt.Errorf("failed to count attempt: %w", err)
	}
	if attempts == 1 {
		// Counter expires with the code it guards.
		if err := s.redis.Expire(ctx, attemptsKey(email), s.codeTTL).Err(); err != nil {
			return fmt.Errorf("failed to expire attempt counter: %w", err)
		}
	}
	if attempts > int64(s.maxAttempts) {
		// Burn the challenge; the user must request a fresh code.
		s.redis.Del(ctx, codeKey(email), attemptsKey(email))
		log.Warn("challenge invalidated after too many attempts",
			slog.Int64("attempts", attempts))
		return store.ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return store.ErrCodeMismatch
	}

	// Consume on success so the code is strictly one-time.
	if err := s.redis.Del(ctx, codeKey(email), attemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to consume challenge: %w", err)
	}

	log.Info("challenge verified")
	return nil
}

// ResendRemaining implements store.ChallengeStore.ResendRemaining
func (s *ChallengeStore) ResendRemaining(ctx context.Context, email string) (time.Duration, error) {
	ttl, err := s.redis.TTL(ctx, cooldownKey(domain.NormalizeEmail(email))).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cooldown: %w", err)
	}
	if ttl < 0 { // -1 no expiry, -2 missing key
		return 0, nil
	}
	return ttl, nil
}

func codeKey(email string) string {
	return "otp:code:" + email
}

func attemptsKey(email string) string {
	return "otp:attempts:" + email
}

func cooldownKey(email string) string {
	return "otp:cooldown:" + email
}
