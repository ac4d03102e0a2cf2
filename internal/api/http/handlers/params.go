package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Chirag2510/QuizApp-React-DotNet/pkg/util"
)

func idParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, util.NewBadRequest("Invalid ID")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return util.NewDomainError(util.KindBadRequest, "Invalid request body", err)
	}
	return nil
}
