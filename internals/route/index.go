package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	flagRoute "chike_backend/internals/features/configflags/route"
	dictRoute "chike_backend/internals/features/dictionary/route"
	deptRoute "chike_backend/internals/features/org/departments/route"
	storeRoute "chike_backend/internals/features/org/stores/route"
	permRoute "chike_backend/internals/features/permissions/consultation/route"
	dailyRoute "chike_backend/internals/features/reports/daily/route"
	lockRoute "chike_backend/internals/features/reports/locks/route"
	templateRoute "chike_backend/internals/features/reports/templates/route"
	authRoute "chike_backend/internals/features/users/auth/route"
	userRoute "chike_backend/internals/features/users/user/route"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes 路由总装。
// /api/auth  公开（登录、刷新）
// /api/u     登录即可（自助：日报、字典、会话）
// /api/a     登录 + 各自路由组的角色闸口（管理侧）
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	api := app.Group("/api")

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up auth routes...")
	authRoute.AuthPublicRoutes(api, db)

	// ===================== USER (/api/u) =====================
	log.Println("[INFO] Setting up user-facing routes...")
	userAPI := api.Group("/u", authMiddleware.AuthMiddleware(db))
	authRoute.AuthUserRoutes(userAPI, db)
	dailyRoute.DailyReportUserRoutes(userAPI, db)
	dictRoute.DictionaryUserRoutes(userAPI, db)
	deptRoute.DepartmentUserRoutes(userAPI, db)
	storeRoute.StoreUserRoutes(userAPI, db)

	// ===================== ADMIN (/api/a) =====================
	log.Println("[INFO] Setting up admin routes...")
	adminAPI := api.Group("/a", authMiddleware.AuthMiddleware(db))
	dailyRoute.TeamReportAdminRoutes(adminAPI, db)
	lockRoute.LockRoutes(adminAPI, db)
	templateRoute.TemplateAdminRoutes(adminAPI, db)
	permRoute.ConsultationPermissionRoutes(adminAPI, db)
	userRoute.UserAdminRoutes(adminAPI, db)
	deptRoute.DepartmentAdminRoutes(adminAPI, db)
	storeRoute.StoreAdminRoutes(adminAPI, db)
	dictRoute.DictionaryAdminRoutes(adminAPI, db)
	flagRoute.ConfigFlagAdminRoutes(adminAPI, db)

	// 运行时长探针
	app.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"uptime": time.Since(startTime).String()})
	})
}
