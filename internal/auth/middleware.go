package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/observability"
)

const principalKey = "auth_principal"

// UnauthorizedBody is the fixed plaintext body written on rejection.
const UnauthorizedBody = "Unauthorized"

// DefaultBypassRoutes are the path fragments served without a token.
var DefaultBypassRoutes = []string{
	"/api/participants/login",
	"/api/participants/signup",
}

// Principal represents the authenticated caller.
type Principal struct {
	ParticipantID int64
	Email         string
}

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// AuthMiddleware validates bearer tokens for every route except the bypass routes.
type AuthMiddleware struct {
	tokens  TokenVerifier
	bypass  []string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:  tokens,
		bypass:  DefaultBypassRoutes,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle enforces authentication. Rejections are written here directly as a
// plaintext 401 and never reach the error handler.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if m.isBypassed(c.Path()) {
		return c.Next()
	}

	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return m.reject(c, "missing_token")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return m.reject(c, "invalid_token")
	}

	c.Locals(principalKey, &Principal{ParticipantID: claims.ParticipantID, Email: claims.Email})
	return c.Next()
}

func (m *AuthMiddleware) isBypassed(path string) bool {
	lower := strings.ToLower(path)
	for _, route := range m.bypass {
		if strings.Contains(lower, route) {
			return true
		}
	}
	return false
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, reason string) error {
	m.logger.Warn("request rejected by auth gateway",
		zap.String("reason", reason),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	m.metrics.RecordAuthRejection(reason)

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusUnauthorized).SendString(UnauthorizedBody)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
