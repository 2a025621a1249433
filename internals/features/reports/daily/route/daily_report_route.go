package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	"chike_backend/internals/features/reports/daily/controller"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

// DailyReportUserRoutes 员工自助端（/api/u 下挂载）
func DailyReportUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDailyReportController(db)

	r := api.Group("/daily-reports")
	r.Get("/schema", ctrl.GetSchema)
	r.Get("/", ctrl.GetMine)
	r.Post("/", ctrl.Upsert)
}

// TeamReportAdminRoutes 管理端（/api/a 下挂载），主管及以上
func TeamReportAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDailyReportController(db)

	r := api.Group("/team-reports",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorLead("查看团队日报"), constants.LeadAndAbove),
	)
	r.Get("/", ctrl.TeamList)
	r.Get("/summary", ctrl.Summary)
	r.Get("/export", ctrl.Export)
	r.Put("/:id", ctrl.TeamEdit)
}
