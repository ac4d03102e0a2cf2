package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/api/dto"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/auth"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/service"
)

// ParticipantsHandler exposes participant endpoints.
type ParticipantsHandler struct {
	participants *service.ParticipantService
	cookie       SessionCookie
}

// NewParticipantsHandler constructs handler.
func NewParticipantsHandler(participants *service.ParticipantService, cookie SessionCookie) *ParticipantsHandler {
	return &ParticipantsHandler{participants: participants, cookie: cookie}
}

// List handles GET /api/Participants.
func (h *ParticipantsHandler) List(c *fiber.Ctx) error {
	results, err := h.participants.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.ParticipantResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.NewParticipantResponse(r))
	}
	return c.JSON(out)
}

// Get handles GET /api/Participants/:id.
func (h *ParticipantsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	result, err := h.participants.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewParticipantResponse(*result))
}

// SubmitResult handles PUT /api/Participants/:id.
func (h *ParticipantsHandler) SubmitResult(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.ResultRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	err = h.participants.SubmitResult(c.UserContext(), id, service.ResultInput{
		ParticipantID: req.ParticipantID,
		Score:         string(req.Score),
		TimeTaken:     string(req.TimeTaken),
	})
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Signup handles POST /api/Participants/signup.
func (h *ParticipantsHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.participants.Signup(c.UserContext(), h.cookie.ensure(c), service.SignupInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{ParticipantID: res.ParticipantID, Token: res.Token})
}

// Login handles POST /api/Participants/login.
func (h *ParticipantsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.participants.Login(c.UserContext(), h.cookie.ensure(c), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{ParticipantID: res.ParticipantID, Token: res.Token})
}

// Logout handles POST /api/Participants/logout.
func (h *ParticipantsHandler) Logout(c *fiber.Ctx) error {
	var participantID int64
	if principal, ok := auth.PrincipalFromContext(c); ok {
		participantID = principal.ParticipantID
	}
	if err := h.participants.Logout(c.UserContext(), c.Cookies(h.cookie.Name), participantID); err != nil {
		return err
	}
	h.cookie.clear(c)
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully."})
}

// Delete handles DELETE /api/Participants/:id.
func (h *ParticipantsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.participants.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
