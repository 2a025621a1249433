package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	lockController "chike_backend/internals/features/reports/locks/controller"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

func LockRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := lockController.NewLockController(db)

	locks := app.Group("/day-locks",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorManager("日期锁定"), constants.LockCapable),
	)

	locks.Get("/", ctrl.List)
	locks.Post("/", ctrl.Upsert)
}
