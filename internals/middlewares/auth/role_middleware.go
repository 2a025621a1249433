package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RoleMiddlewareWithCustomError 角色校验 + 自定义拒绝消息。
// 用户的角色是能力集合（可同时持有多个），命中任意一个即放行。
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals("roles").([]string)
		if !ok || len(roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		for _, have := range roles {
			for _, allowed := range allowedRoles {
				if have == allowed {
					return c.Next()
				}
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customForbiddenMessage,
		})
	}
}

// OnlyRoles 快捷写法
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}

// OnlyRolesSlice 角色组快捷写法
func OnlyRolesSlice(customMessage string, roles []string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
