package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/config"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = time.Hour

// ErrInvalidToken is returned for every verification failure. Expired,
// forged and malformed tokens are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		tm.now = now
	}
}

// NewTokenManager builds a new manager from the process-wide auth config.
func NewTokenManager(cfg config.AuthConfig, opts ...TokenOption) *TokenManager {
	tm := &TokenManager{secret: []byte(cfg.SecretKey), ttl: TokenTTL, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// Claims describes JWT payload.
type Claims struct {
	ParticipantID int64  `json:"pid"`
	Email         string `json:"email"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the participant.
func (tm *TokenManager) Issue(participantID int64, email string) (string, error) {
	now := tm.now()
	claims := &Claims{
		ParticipantID: participantID,
		Email:         email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(participantID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify validates signature and expiry and returns the embedded claims.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject != strconv.FormatInt(claims.ParticipantID, 10) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
