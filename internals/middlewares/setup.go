package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"chike_backend/internals/middlewares/logger"
)

// SetupMiddlewares 挂载全局中间件（顺序：恢复 → CORS → 访问日志 → 全局限流）
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
