package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	flagController "chike_backend/internals/features/configflags/controller"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

// 门店级配置店长可写（细则在 policy.CanManageFlags），全局仅总部
func ConfigFlagAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := flagController.NewConfigFlagController(db)

	flags := api.Group("/config-flags",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorManager("配置管理"), constants.ManagerAndAbove),
	)
	flags.Get("/", ctrl.List)
	flags.Put("/", ctrl.Upsert)
	flags.Delete("/:id", ctrl.Delete)
}
