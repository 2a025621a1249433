package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const LocRawToken = "raw_token"

// GetRawAccessToken 按以下顺序取 access token：
// 1) cookie "access_token"
// 2) 中间件写入的 Locals("raw_token")
// 3) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

func GetRefreshTokenFromCookie(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies("refresh_token"))
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}
