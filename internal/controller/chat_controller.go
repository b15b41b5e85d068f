package controller

import (
	"gembreak-be/internal/dto"
	"gembreak-be/internal/pkg/serverutils"
	"gembreak-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	ChatHistory(ctx *fiber.Ctx) error
	Sessions(ctx *fiber.Ctx) error
	HideChat(ctx *fiber.Ctx) error
}

type chatController struct {
	generateService service.IGenerateService
	chatService     service.IChatService
}

func NewChatController(generateService service.IGenerateService, chatService service.IChatService) IChatController {
	return &chatController{
		generateService: generateService,
		chatService:     chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate", c.Generate)
	r.Get("/chat_history", c.ChatHistory)
	r.Get("/sessions", c.Sessions)

	u := r.Group("/user")
	u.Use(serverutils.UserJwtMiddleware)
	u.Post("/chats/hide", c.HideChat)
}

// Generate speaks the raw wire dialect the web client was built against:
// {text} on success, {error, isBlocked?} on failure. It never uses the
// standard envelope.
func (c *chatController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := c.generateService.RunTurn(ctx.Context(), &req)
	if err != nil {
		if appErr, ok := serverutils.AsAppError(err); ok {
			body := fiber.Map{"error": appErr.Message}
			if appErr.IsBlocked {
				body["isBlocked"] = true
			}
			return ctx.Status(appErr.Code).JSON(body)
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(res)
}

func (c *chatController) ChatHistory(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("sessionId")
	userId := ctx.Query("userId")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "sessionId is required"})
	}
	if userId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId is required"})
	}
	ownerId, err := uuid.Parse(userId)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid userId format"})
	}

	history, err := c.chatService.GetHistory(ctx.Context(), ownerId, sessionId)
	if err != nil {
		return renderRawError(ctx, err)
	}
	return ctx.JSON(history)
}

func (c *chatController) Sessions(ctx *fiber.Ctx) error {
	userId := ctx.Query("userId")
	if userId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId is required"})
	}
	ownerId, err := uuid.Parse(userId)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid userId format"})
	}

	sessions, err := c.chatService.ListSessions(ctx.Context(), ownerId)
	if err != nil {
		return renderRawError(ctx, err)
	}
	return ctx.JSON(sessions)
}

func (c *chatController) HideChat(ctx *fiber.Ctx) error {
	var req dto.HideChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "sessionId is required"})
	}
	if req.UserId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId is required"})
	}
	ownerId, err := uuid.Parse(req.UserId)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid userId format"})
	}

	res, err := c.chatService.Hide(ctx.Context(), ownerId, req.SessionId)
	if err != nil {
		return renderRawError(ctx, err)
	}
	return ctx.JSON(res)
}

func renderRawError(ctx *fiber.Ctx, err error) error {
	if appErr, ok := serverutils.AsAppError(err); ok {
		return ctx.Status(appErr.Code).JSON(fiber.Map{"error": appErr.Message})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
