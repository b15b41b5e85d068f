package controller

import (
	"gembreak-be/internal/dto"
	"gembreak-be/internal/pkg/serverutils"
	"gembreak-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ListSystemPrompts(ctx *fiber.Ctx) error
	CreateSystemPrompt(ctx *fiber.Ctx) error
	UpdateSystemPrompt(ctx *fiber.Ctx) error
	DeleteSystemPrompt(ctx *fiber.Ctx) error
	ChatHistories(ctx *fiber.Ctx) error
	Users(ctx *fiber.Ctx) error
	Metrics(ctx *fiber.Ctx) error
	ListInviteCodes(ctx *fiber.Ctx) error
	GenerateInviteCode(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService  service.IAdminService
	promptService service.ISystemPromptService
}

func NewAdminController(adminService service.IAdminService, promptService service.ISystemPromptService) IAdminController {
	return &adminController{
		adminService:  adminService,
		promptService: promptService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.AdminJwtMiddleware)

	h.Get("/system_prompts", c.ListSystemPrompts)
	h.Post("/system_prompts", c.CreateSystemPrompt)
	h.Put("/system_prompts", c.UpdateSystemPrompt)
	h.Delete("/system_prompts", c.DeleteSystemPrompt)

	h.Get("/chat_histories", c.ChatHistories)
	h.Get("/users", c.Users)
	h.Get("/metrics", c.Metrics)
	h.Get("/invite-codes", c.ListInviteCodes)
	h.Post("/invite-codes", c.GenerateInviteCode)
}

func (c *adminController) ListSystemPrompts(ctx *fiber.Ctx) error {
	prompts, err := c.promptService.ListForAdmin(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true, "systemPrompts": prompts})
}

func (c *adminController) CreateSystemPrompt(ctx *fiber.Ctx) error {
	var req dto.CreateSystemPromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if req.Name == "" || req.PromptText == "" {
		return serverutils.BadRequest("Name and promptText are required")
	}

	prompt, err := c.promptService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "systemPrompt": prompt})
}

func (c *adminController) UpdateSystemPrompt(ctx *fiber.Ctx) error {
	var req dto.UpdateSystemPromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	prompt, err := c.promptService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true, "systemPrompt": prompt})
}

func (c *adminController) DeleteSystemPrompt(ctx *fiber.Ctx) error {
	if err := c.promptService.Delete(ctx.Context(), ctx.Query("id")); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true, "message": "System prompt deleted successfully"})
}

func (c *adminController) ChatHistories(ctx *fiber.Ctx) error {
	histories, err := c.adminService.ChatHistories(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true, "histories": histories})
}

func (c *adminController) Users(ctx *fiber.Ctx) error {
	users, err := c.adminService.Users(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true, "users": users})
}

func (c *adminController) Metrics(ctx *fiber.Ctx) error {
	metrics, err := c.adminService.Metrics(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true, "metrics": metrics})
}

func (c *adminController) ListInviteCodes(ctx *fiber.Ctx) error {
	codes, err := c.adminService.ListInviteCodes(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"success": true, "inviteCodes": codes})
}

func (c *adminController) GenerateInviteCode(ctx *fiber.Ctx) error {
	code, err := c.adminService.GenerateInviteCode(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success":    true,
		"message":    "Invite code generated successfully.",
		"inviteCode": code,
	})
}
