package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	templateController "chike_backend/internals/features/reports/templates/controller"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

// 模板配置仅总部管理员可用
func TemplateAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := templateController.NewTemplateController(db)

	tpl := app.Group("/report-templates",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorHQ("日报模板配置"), constants.HQOnly),
	)

	tpl.Get("/", ctrl.List)
	tpl.Post("/", ctrl.Upsert)
	tpl.Post("/preview", ctrl.Preview)
	tpl.Delete("/:id", ctrl.Delete)
}
