package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	userController "chike_backend/internals/features/users/user/controller"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

// 用户管理：店长及以上（细则在 policy.ValidateUserUpdate 里）
func UserAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := app.Group("/users",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorManager("用户管理"), constants.ManagerAndAbove),
	)

	users.Get("/", ctrl.List)
	users.Get("/:id", ctrl.Get)
	users.Post("/", ctrl.Create)
	users.Put("/:id", ctrl.Update)
}
