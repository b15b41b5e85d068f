package serverutils

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserSessionCookie  = "user_session"
	AdminSessionCookie = "admin_session"

	// SessionTTL bounds both admin and user sessions.
	SessionTTL = 2 * time.Hour
)

// SignToken issues an HS256 session token with iat/exp stamped in.
func SignToken(claims jwt.MapClaims) (string, error) {
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(SessionTTL).Unix()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret)
}

// tokenFromRequest prefers the session cookie and falls back to a Bearer
// header so that API clients without a cookie jar still work.
func tokenFromRequest(ctx *fiber.Ctx, cookieName string) string {
	if cookie := ctx.Cookies(cookieName); cookie != "" {
		return cookie
	}
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

func parseClaims(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// UserJwtMiddleware guards /api/user/* routes with the user session token.
func UserJwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr := tokenFromRequest(ctx, UserSessionCookie)
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}

	claims, err := parseClaims(tokenStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	userId, ok := claims["user_id"].(string)
	if !ok || userId == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	ctx.Locals("user_id", userId)
	return ctx.Next()
}

// AdminJwtMiddleware guards the admin console with the admin session token.
func AdminJwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr := tokenFromRequest(ctx, AdminSessionCookie)
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Admin authentication required"})
	}

	claims, err := parseClaims(tokenStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Admin session expired or invalid"})
	}

	if isAdmin, ok := claims["is_admin"].(bool); !ok || !isAdmin {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Admin session expired or invalid"})
	}

	ctx.Locals("admin_username", claims["username"])
	return ctx.Next()
}
