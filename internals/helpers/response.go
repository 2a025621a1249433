package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ 简单错误响应
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// ✅ 带字段明细的错误响应
func ErrorWithDetails(c *fiber.Ctx, code int, message string, errors interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
		"errors":  errors,
	})
}

// ✅ validator.v10 校验错误
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors, ok := err.(validator.ValidationErrors); ok {
		ve = errors
	} else {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}

	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return ErrorWithDetails(c, fiber.StatusBadRequest, "参数校验失败", errorsMap)
}
