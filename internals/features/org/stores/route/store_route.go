package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	storeController "chike_backend/internals/features/org/stores/controller"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

func StoreUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := storeController.NewStoreController(db)
	api.Get("/stores", ctrl.List)
}

func StoreAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := storeController.NewStoreController(db)

	stores := api.Group("/stores",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorHQ("门店管理"), constants.HQOnly),
	)
	stores.Post("/", ctrl.Create)
	stores.Put("/:id", ctrl.Update)
	stores.Delete("/:id", ctrl.Delete)
}
