package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/api/dto"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/service"
)

// QuestionsHandler exposes quiz question endpoints.
type QuestionsHandler struct {
	questions *service.QuestionService
}

// NewQuestionsHandler constructs handler.
func NewQuestionsHandler(questions *service.QuestionService) *QuestionsHandler {
	return &QuestionsHandler{questions: questions}
}

// Round handles GET /api/Questions.
func (h *QuestionsHandler) Round(c *fiber.Ctx) error {
	questions, err := h.questions.Round(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.NewQuestionResponse(q))
	}
	return c.JSON(out)
}

// Get handles GET /api/Questions/:id.
func (h *QuestionsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	q, err := h.questions.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestion(*q))
}

// Update handles PUT /api/Questions/:id.
func (h *QuestionsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.Question
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.questions.Update(c.UserContext(), id, req.ToDomain()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Answers handles POST /api/Questions/GetAnswers. The body is a JSON array of ids.
func (h *QuestionsHandler) Answers(c *fiber.Ctx) error {
	var ids []int64
	if len(c.Body()) > 0 {
		if err := parseBody(c, &ids); err != nil {
			return err
		}
	}
	questions, err := h.questions.Answers(c.UserContext(), ids)
	if err != nil {
		return err
	}
	out := make([]dto.QuestionAnswerResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.NewQuestionAnswerResponse(q))
	}
	return c.JSON(out)
}

// Delete handles DELETE /api/Questions/:id.
func (h *QuestionsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.questions.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
