package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "chike_backend/internals/features/users/auth/controller"
	"chike_backend/internals/middlewares"
)

// AuthPublicRoutes 不带鉴权的入口（/api/auth）
func AuthPublicRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := app.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh-token", ctrl.RefreshToken)
}

// AuthUserRoutes 登录后才可用的会话操作（/api/u 下挂载）
func AuthUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	api.Post("/logout", ctrl.Logout)
	api.Post("/change-password", ctrl.ChangePassword)
	api.Get("/me", ctrl.Me)
}
