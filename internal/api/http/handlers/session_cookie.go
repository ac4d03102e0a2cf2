package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionCookie names and scopes the cookie carrying the session id.
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// ensure returns the caller's session id, minting and setting a new one when absent.
func (s SessionCookie) ensure(c *fiber.Ctx) string {
	if id := c.Cookies(s.Name); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(s.TTL),
		HTTPOnly: true,
		Secure:   s.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}

func (s SessionCookie) clear(c *fiber.Ctx) {
	c.ClearCookie(s.Name)
}
