package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	dictController "chike_backend/internals/features/dictionary/controller"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

func DictionaryUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := dictController.NewDictionaryController(db)
	api.Get("/dictionary", ctrl.List)
}

func DictionaryAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := dictController.NewDictionaryController(db)

	dict := api.Group("/dictionary",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorHQ("字典管理"), constants.HQOnly),
	)
	dict.Get("/", ctrl.AdminList)
	dict.Post("/", ctrl.Create)
	dict.Put("/:id", ctrl.Update)
	dict.Delete("/:id", ctrl.Delete)
}
