package controller

import (
	"gembreak-be/internal/dto"
	"gembreak-be/internal/pkg/serverutils"
	"gembreak-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	AdminLogin(ctx *fiber.Ctx) error
	AdminLogout(ctx *fiber.Ctx) error
	Register(ctx *fiber.Ctx) error
	UserLogin(ctx *fiber.Ctx) error
	UserLogout(ctx *fiber.Ctx) error
	MyInviteCode(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
	secureCookie bool
}

func NewAuthController(authService service.IAuthService, secureCookie bool) IAuthController {
	return &authController{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.AdminLogin)
	h.Post("/logout", c.AdminLogout)
	h.Post("/register", c.Register)
	h.Post("/user-login", c.UserLogin)
	h.Post("/user-logout", c.UserLogout)

	u := r.Group("/user")
	u.Use(serverutils.UserJwtMiddleware)
	u.Get("/me/invite-code", c.MyInviteCode)
}

func (c *authController) AdminLogin(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	token, err := c.authService.LoginAdmin(ctx.Context(), &req)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, serverutils.AdminSessionCookie, token)
	return ctx.JSON(serverutils.SuccessResponse[any]("Login successful", nil))
}

func (c *authController) AdminLogout(ctx *fiber.Ctx) error {
	c.expireSessionCookie(ctx, serverutils.AdminSessionCookie)
	return ctx.JSON(serverutils.SuccessResponse[any]("Logout successful", nil))
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if req.Username == "" || req.Password == "" || req.InviteCodeToUse == "" {
		return serverutils.BadRequest("Username, password, and invite code are required.")
	}

	res, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, serverutils.UserSessionCookie, res.Token)
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Registration successful", res))
}

func (c *authController) UserLogin(ctx *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return serverutils.BadRequest("Username and password are required.")
	}

	res, err := c.authService.LoginUser(ctx.Context(), &req)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, serverutils.UserSessionCookie, res.Token)
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) UserLogout(ctx *fiber.Ctx) error {
	c.expireSessionCookie(ctx, serverutils.UserSessionCookie)
	return ctx.JSON(serverutils.SuccessResponse[any]("User logout successful", nil))
}

func (c *authController) MyInviteCode(ctx *fiber.Ctx) error {
	userId, _ := ctx.Locals("user_id").(string)

	res, err := c.authService.MyInviteCode(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) setSessionCookie(ctx *fiber.Ctx, name, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(serverutils.SessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   c.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (c *authController) expireSessionCookie(ctx *fiber.Ctx, name string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   c.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
