package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	permController "chike_backend/internals/features/permissions/consultation/controller"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

func ConsultationPermissionRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := permController.NewConsultationPermissionController(db)

	perms := app.Group("/consultation-permissions",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorManager("咨询查看授权"), constants.ManagerAndAbove),
	)

	perms.Get("/", ctrl.List)
	perms.Post("/", ctrl.Grant)
	perms.Delete("/:id", ctrl.Revoke)
}
