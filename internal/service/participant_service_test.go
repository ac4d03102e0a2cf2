package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/auth"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/config"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/domain"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/events"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/fieldcipher"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/repository"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/session"
	"github.com/Chirag2510/QuizApp-React-DotNet/pkg/util"
)

// countingRepo records write calls made against the wrapped repository.
type countingRepo struct {
	repository.ParticipantRepository
	reads, writes int
}

func (r *countingRepo) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	r.reads++
	return r.ParticipantRepository.GetByID(ctx, id)
}

func (r *countingRepo) UpdateResult(ctx context.Context, id int64, score, timeTaken string) error {
	r.writes++
	return r.ParticipantRepository.UpdateResult(ctx, id, score, timeTaken)
}

type failingRepo struct {
	repository.ParticipantRepository
}

func (failingRepo) List(context.Context) ([]domain.Participant, error) {
	return nil, errors.New("connection reset")
}

type participantFixture struct {
	svc        *ParticipantService
	repo       *countingRepo
	tokens     *auth.TokenManager
	cipher     *fieldcipher.Cipher
	sessions   *session.MemoryStore
	dispatcher events.Dispatcher
}

func newParticipantFixture(t *testing.T) participantFixture {
	t.Helper()
	cfg := config.AuthConfig{SecretKey: "service-test-secret"}

	cipher, err := fieldcipher.New(cfg)
	require.NoError(t, err)

	f := participantFixture{
		repo:       &countingRepo{ParticipantRepository: repository.NewMemoryParticipantRepository()},
		tokens:     auth.NewTokenManager(cfg),
		cipher:     cipher,
		sessions:   session.NewMemoryStore(),
		dispatcher: events.NewInMemoryDispatcher(),
	}
	f.svc = NewParticipantService(ParticipantDependencies{
		ParticipantRepo: f.repo,
		Hasher:          auth.NewPasswordHasher(cfg),
		Tokens:          f.tokens,
		Cipher:          f.cipher,
		Sessions:        f.sessions,
		SessionTTL:      time.Hour,
		Dispatcher:      f.dispatcher,
		Logger:          zap.NewNop(),
	})
	return f
}

func TestSignupIssuesVerifiableToken(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	var published []events.EventType
	f.dispatcher.Subscribe(events.EventParticipantRegistered, func(_ context.Context, e events.Event) error {
		published = append(published, e.Type)
		return nil
	})

	res, err := f.svc.Signup(ctx, "sess-1", SignupInput{Email: "john@example.com", Name: "John", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ParticipantID)

	claims, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.ParticipantID)
	assert.Equal(t, "john@example.com", claims.Email)

	stored, err := f.sessions.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, res.Token, stored)

	p, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", p.PasswordHash)
	assert.Equal(t, []events.EventType{events.EventParticipantRegistered}, published)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, "", SignupInput{Email: "john@example.com", Password: "a"})
	require.NoError(t, err)

	_, err = f.svc.Signup(ctx, "", SignupInput{Email: "john@example.com", Password: "b"})
	require.Error(t, err)
	de := util.ToDomainError(err)
	assert.Equal(t, util.KindConflict, de.Kind)
	assert.Equal(t, "Email is already registered", de.Message)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSignupRequiresCredentials(t *testing.T) {
	f := newParticipantFixture(t)
	_, err := f.svc.Signup(context.Background(), "", SignupInput{Email: " ", Password: "x"})
	assert.True(t, util.IsKind(err, util.KindBadRequest))
}

func TestLogin(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	signup, err := f.svc.Signup(ctx, "", SignupInput{Email: "jane@example.com", Name: "Jane", Password: "pw"})
	require.NoError(t, err)

	res, err := f.svc.Login(ctx, "sess-2", "jane@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, signup.ParticipantID, res.ParticipantID)
	stored, err := f.sessions.Get(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, res.Token, stored)

	for name, creds := range map[string][2]string{
		"wrong password": {"jane@example.com", "nope"},
		"unknown email":  {"ghost@example.com", "pw"},
		"email case":     {"JANE@example.com", "pw"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, "", creds[0], creds[1])
			de := util.ToDomainError(err)
			assert.Equal(t, util.KindUnauthorized, de.Kind)
			assert.Equal(t, "Invalid email or password", de.Message)
		})
	}
}

func TestLogoutClearsSession(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	res, err := f.svc.Signup(ctx, "sess-3", SignupInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, "sess-3", res.ParticipantID))
	_, err = f.sessions.Get(ctx, "sess-3")
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = f.tokens.Verify(res.Token)
	assert.NoError(t, err, "logout does not revoke tokens")

	assert.NoError(t, f.svc.Logout(ctx, "", 0), "logout without a session is a no-op")
}

func TestSubmitResultEncryptsFields(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	res, err := f.svc.Signup(ctx, "", SignupInput{Email: "a@x.com", Name: "A", Password: "pw"})
	require.NoError(t, err)
	id := res.ParticipantID

	got, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Score)
	assert.Nil(t, got.TimeTaken)

	require.NoError(t, f.svc.SubmitResult(ctx, id, ResultInput{ParticipantID: id, Score: "4", TimeTaken: "37"}))

	raw, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, raw.Score)
	assert.NotEqual(t, "4", *raw.Score, "score must be stored as ciphertext")
	plain, err := f.cipher.Decrypt(*raw.Score)
	require.NoError(t, err)
	assert.Equal(t, "4", plain)

	got, err = f.svc.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, "4", *got.Score)
	assert.Equal(t, "37", *got.TimeTaken)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "37", *list[0].TimeTaken)
}

func TestSubmitResultIDMismatchDoesNotTouchStore(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, "", SignupInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	f.repo.reads, f.repo.writes = 0, 0

	err = f.svc.SubmitResult(ctx, 1, ResultInput{ParticipantID: 2, Score: "1", TimeTaken: "1"})
	de := util.ToDomainError(err)
	assert.Equal(t, util.KindBadRequest, de.Kind)
	assert.Equal(t, "ID mismatch", de.Message)
	assert.Zero(t, f.repo.reads)
	assert.Zero(t, f.repo.writes)
}

func TestSubmitResultValidation(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	for _, in := range []ResultInput{
		{ParticipantID: 1, Score: "-1", TimeTaken: "3"},
		{ParticipantID: 1, Score: "2.5", TimeTaken: "3"},
		{ParticipantID: 1, Score: "", TimeTaken: "3"},
		{ParticipantID: 1, Score: "3", TimeTaken: "abc"},
	} {
		err := f.svc.SubmitResult(ctx, 1, in)
		assert.True(t, util.IsKind(err, util.KindBadRequest), "%+v", in)
	}
	assert.Zero(t, f.repo.writes)
}

func TestUnknownParticipant(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, 99)
	de := util.ToDomainError(err)
	assert.Equal(t, util.KindNotFound, de.Kind)
	assert.Equal(t, "Participant with ID 99 not found", de.Message)

	err = f.svc.SubmitResult(ctx, 99, ResultInput{ParticipantID: 99, Score: "1", TimeTaken: "1"})
	assert.Equal(t, "Participant with ID 99 not found", util.ToDomainError(err).Message)

	err = f.svc.Delete(ctx, 99)
	assert.True(t, util.IsKind(err, util.KindNotFound))
}

func TestDeleteParticipant(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	res, err := f.svc.Signup(ctx, "", SignupInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, res.ParticipantID))

	_, err = f.svc.Get(ctx, res.ParticipantID)
	assert.True(t, util.IsKind(err, util.KindNotFound))
}

func TestTamperedCiphertextIsInternal(t *testing.T) {
	f := newParticipantFixture(t)
	ctx := context.Background()

	res, err := f.svc.Signup(ctx, "", SignupInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, f.repo.UpdateResult(ctx, res.ParticipantID, "not-ciphertext", "also-not"))

	_, err = f.svc.Get(ctx, res.ParticipantID)
	de := util.ToDomainError(err)
	assert.Equal(t, util.KindInternal, de.Kind)
	var decErr *fieldcipher.DecryptionError
	assert.ErrorAs(t, err, &decErr)
}

func TestStoreFailureIsInternal(t *testing.T) {
	f := newParticipantFixture(t)
	f.svc.participants = failingRepo{}

	_, err := f.svc.List(context.Background())
	assert.True(t, util.IsKind(err, util.KindInternal))
}

func TestSubscriberFailureIsLoggedNotReturned(t *testing.T) {
	f := newParticipantFixture(t)
	core, logs := observer.New(zapcore.WarnLevel)
	f.svc.logger = zap.New(core)
	f.dispatcher.Subscribe(events.EventParticipantRegistered, func(context.Context, events.Event) error {
		return errors.New("subscriber down")
	})

	_, err := f.svc.Signup(context.Background(), "", SignupInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("event subscriber failed").Len())
}

func TestIsDecimalString(t *testing.T) {
	for s, want := range map[string]bool{
		"0": true, "42": true, "007": true,
		"": false, "-1": false, "1.0": false, "1e3": false, " 1": false,
	} {
		assert.Equal(t, want, IsDecimalString(s), "%q", s)
	}
}
