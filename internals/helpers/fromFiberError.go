package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError 把事务/服务层返回的 error（通常是 *fiber.Error）
// 统一转成 JSON 响应；其他类型兜底 500。
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
