package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/auth"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/domain"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/events"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/repository"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/session"
	"github.com/Chirag2510/QuizApp-React-DotNet/pkg/util"
)

const (
	msgEmailTaken         = "Email is already registered"
	msgInvalidCredentials = "Invalid email or password"
	msgIDMismatch         = "ID mismatch"
)

// FieldCipher protects stored participant result fields.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// TokenIssuer mints bearer tokens for authenticated participants.
type TokenIssuer interface {
	Issue(participantID int64, email string) (string, error)
}

// ParticipantService coordinates signup, login and result workflows.
type ParticipantService struct {
	participants repository.ParticipantRepository
	hasher       auth.PasswordHasher
	tokens       TokenIssuer
	cipher       FieldCipher
	sessions     session.Store
	sessionTTL   time.Duration
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// ParticipantDependencies bundles collaborators for the participant service.
type ParticipantDependencies struct {
	ParticipantRepo repository.ParticipantRepository
	Hasher          auth.PasswordHasher
	Tokens          TokenIssuer
	Cipher          FieldCipher
	Sessions        session.Store
	SessionTTL      time.Duration
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewParticipantService builds the service.
func NewParticipantService(deps ParticipantDependencies) *ParticipantService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParticipantService{
		participants: deps.ParticipantRepo,
		hasher:       deps.Hasher,
		tokens:       deps.Tokens,
		cipher:       deps.Cipher,
		sessions:     deps.Sessions,
		sessionTTL:   deps.SessionTTL,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
	}
}

// SignupInput describes a new participant.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// ResultInput is a score submission. Score and TimeTaken are decimal strings.
type ResultInput struct {
	ParticipantID int64
	Score         string
	TimeTaken     string
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	ParticipantID int64
	Token         string
}

// Signup registers a participant and issues a token. The token is also echoed
// into the caller's session when sessionID is set.
func (s *ParticipantService) Signup(ctx context.Context, sessionID string, in SignupInput) (*AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, util.NewBadRequest("Email and password are required")
	}

	if _, err := s.participants.GetByEmail(ctx, in.Email); err == nil {
		return nil, util.NewConflict(msgEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, util.NewInternalError(fmt.Errorf("lookup participant by email: %w", err))
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, util.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	participant := &domain.Participant{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: digest,
	}
	if err := s.participants.Create(ctx, participant); err != nil {
		return nil, util.NewInternalError(fmt.Errorf("create participant: %w", err))
	}

	result, err := s.issue(ctx, sessionID, participant)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventParticipantRegistered, participant.ID,
		events.ParticipantPayload{Email: participant.Email, Name: participant.Name}))
	return result, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *ParticipantService) Login(ctx context.Context, sessionID, email, password string) (*AuthResult, error) {
	participant, err := s.participants.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.NewUnauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, util.NewInternalError(fmt.Errorf("lookup participant by email: %w", err))
	}
	if !s.hasher.Verify(password, participant.PasswordHash) {
		return nil, util.NewUnauthorized(msgInvalidCredentials)
	}

	result, err := s.issue(ctx, sessionID, participant)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventParticipantLoggedIn, participant.ID,
		events.ParticipantPayload{Email: participant.Email}))
	return result, nil
}

// Logout clears the session value. Previously issued tokens stay valid until expiry.
func (s *ParticipantService) Logout(ctx context.Context, sessionID string, participantID int64) error {
	if sessionID == "" || s.sessions == nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return util.NewInternalError(fmt.Errorf("clear session: %w", err))
	}
	s.publish(ctx, events.New(events.EventParticipantLoggedOut, participantID, nil))
	return nil
}

func (s *ParticipantService) issue(ctx context.Context, sessionID string, participant *domain.Participant) (*AuthResult, error) {
	token, err := s.tokens.Issue(participant.ID, participant.Email)
	if err != nil {
		return nil, util.NewInternalError(fmt.Errorf("issue token: %w", err))
	}
	if sessionID != "" && s.sessions != nil {
		if err := s.sessions.Put(ctx, sessionID, token, s.sessionTTL); err != nil {
			return nil, util.NewInternalError(fmt.Errorf("store session: %w", err))
		}
	}
	return &AuthResult{ParticipantID: participant.ID, Token: token}, nil
}

// List returns every participant with result fields decrypted.
func (s *ParticipantService) List(ctx context.Context) ([]domain.ParticipantResult, error) {
	participants, err := s.participants.List(ctx)
	if err != nil {
		return nil, util.NewInternalError(fmt.Errorf("list participants: %w", err))
	}
	out := make([]domain.ParticipantResult, 0, len(participants))
	for i := range participants {
		res, err := s.reveal(&participants[i])
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// Get returns one participant with result fields decrypted.
func (s *ParticipantService) Get(ctx context.Context, id int64) (*domain.ParticipantResult, error) {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return nil, participantLookupError(id, err)
	}
	res, err := s.reveal(participant)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitResult encrypts and stores a participant's score and elapsed time.
// An id that disagrees with the body is rejected before the store is touched.
func (s *ParticipantService) SubmitResult(ctx context.Context, id int64, in ResultInput) error {
	if id != in.ParticipantID {
		return util.NewBadRequest(msgIDMismatch)
	}
	if !IsDecimalString(in.Score) || !IsDecimalString(in.TimeTaken) {
		return util.NewBadRequest("Score and timeTaken must be non-negative integers")
	}

	existing, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return participantLookupError(id, err)
	}

	score, err := s.cipher.Encrypt(in.Score)
	if err != nil {
		return util.NewInternalError(fmt.Errorf("encrypt score: %w", err))
	}
	elapsed, err := s.cipher.Encrypt(in.TimeTaken)
	if err != nil {
		return util.NewInternalError(fmt.Errorf("encrypt time taken: %w", err))
	}

	if err := s.participants.UpdateResult(ctx, id, score, elapsed); err != nil {
		return participantLookupError(id, err)
	}
	s.publish(ctx, events.New(events.EventScoreSubmitted, id,
		events.ScoreSubmittedPayload{Overwrote: existing.Score != nil}))
	return nil
}

// Delete removes a participant.
func (s *ParticipantService) Delete(ctx context.Context, id int64) error {
	if err := s.participants.Delete(ctx, id); err != nil {
		return participantLookupError(id, err)
	}
	s.publish(ctx, events.New(events.EventParticipantDeleted, id, nil))
	return nil
}

func (s *ParticipantService) reveal(p *domain.Participant) (domain.ParticipantResult, error) {
	res := domain.ParticipantResult{ID: p.ID, Email: p.Email, Name: p.Name}
	var err error
	if res.Score, err = s.decryptOptional(p.Score); err != nil {
		return res, util.NewInternalError(fmt.Errorf("decrypt score of participant %d: %w", p.ID, err))
	}
	if res.TimeTaken, err = s.decryptOptional(p.TimeTaken); err != nil {
		return res, util.NewInternalError(fmt.Errorf("decrypt time taken of participant %d: %w", p.ID, err))
	}
	return res, nil
}

func (s *ParticipantService) decryptOptional(ciphertext *string) (*string, error) {
	if ciphertext == nil {
		return nil, nil
	}
	plain, err := s.cipher.Decrypt(*ciphertext)
	if err != nil {
		return nil, err
	}
	return &plain, nil
}

func (s *ParticipantService) publish(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.logger, event)
}

func participantLookupError(id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return util.NewNotFound(fmt.Sprintf("Participant with ID %d not found", id))
	}
	return util.NewInternalError(fmt.Errorf("participant %d: %w", id, err))
}

// IsDecimalString reports whether s is a non-empty run of ASCII digits.
func IsDecimalString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// publish delivers an event after the state change it describes has been
// stored. Subscriber failures are logged and never fail the request.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event subscriber failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
