package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/interna-hq/interna-api/internal/api/shared"
	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/mocks"
	"github.com/interna-hq/interna-api/internal/service/enrollment"
	"github.com/interna-hq/interna-api/internal/service/projects"
)

// apiEnv wires handlers against in-memory stores, a scripted sql.DB, and
// stub token/mail/AI backends.
type apiEnv struct {
	db     *sql.DB
	dbMock sqlmock.Sqlmock

	users      *mocks.MockUserStore
	profiles   *mocks.MockProfileStore
	challenges *mocks.MockChallengeStore
	mailer     *mocks.MockMailer
	progress   *mocks.MockProgressStore
	sims       *mocks.MockSimulationStore
	jwt        *mocks.MockJWTService
	verifier   *mocks.MockPasswordVerifier
	generator  *mocks.MockGenerator

	enrollment *enrollment.Service
	projects   *projects.Service
	logger     *slog.Logger
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	challenges := mocks.NewMockChallengeStore(5)
	challenges.Cooldown = 60 * time.Second

	env := &apiEnv{
		db:         db,
		dbMock:     dbMock,
		users:      mocks.NewMockUserStore(),
		profiles:   mocks.NewMockProfileStore(),
		challenges: challenges,
		mailer:     &mocks.MockMailer{},
		progress:   &mocks.MockProgressStore{},
		sims:       &mocks.MockSimulationStore{},
		jwt:        &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"},
		verifier:   &mocks.MockPasswordVerifier{},
		generator:  &mocks.MockGenerator{Reply: "Sounds good, send me a draft."},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	env.enrollment = enrollment.NewService(db, env.users, env.profiles, env.challenges, env.mailer, env.logger)
	env.projects = projects.NewService(env.progress, env.sims, env.logger)
	return env
}

// seedUser inserts an account and profile seed, returning the user.
func (e *apiEnv) seedUser(t *testing.T, email string, verified bool) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "secret123")
	require.NoError(t, err)
	user.EmailVerified = verified
	require.NoError(t, e.users.Create(context.Background(), user))

	profile, err := domain.NewProfile(user.ID, "Sara Ahmed", "Middle East")
	require.NoError(t, err)
	require.NoError(t, e.profiles.Upsert(context.Background(), profile))

	return user
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// asUser attaches an authenticated user ID to the request context, the way
// the auth middleware does.
func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// decodeBody decodes the recorded response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}
