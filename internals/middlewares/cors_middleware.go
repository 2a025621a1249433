package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"chike_backend/internals/configs"
)

// CorsMiddleware 允许的前端来源通过 CORS_ORIGINS 配置（逗号分隔）
func CorsMiddleware() fiber.Handler {
	origins := configs.GetEnv("CORS_ORIGINS", strings.Join([]string{
		"http://localhost:5173",
		"http://127.0.0.1:5500",
	}, ","))
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
