package controller

import (
	"gembreak-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISystemPromptController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

// systemPromptController serves the end-user read-only persona listing. The
// admin CRUD surface lives in adminController.
type systemPromptController struct {
	promptService service.ISystemPromptService
}

func NewSystemPromptController(promptService service.ISystemPromptService) ISystemPromptController {
	return &systemPromptController{promptService: promptService}
}

func (c *systemPromptController) RegisterRoutes(r fiber.Router) {
	r.Get("/system_prompts", c.List)
}

func (c *systemPromptController) List(ctx *fiber.Ctx) error {
	prompts, err := c.promptService.ListForUser(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true, "systemPrompts": prompts})
}
