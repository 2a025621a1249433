package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	deptController "chike_backend/internals/features/org/departments/controller"
	authMiddleware "chike_backend/internals/middlewares/auth"
)

// DepartmentUserRoutes 只读列表，所有登录用户可用
func DepartmentUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := deptController.NewDepartmentController(db)
	api.Get("/departments", ctrl.List)
}

// DepartmentAdminRoutes 增改仅总部
func DepartmentAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := deptController.NewDepartmentController(db)

	depts := api.Group("/departments",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorHQ("部门管理"), constants.HQOnly),
	)
	depts.Post("/", ctrl.Create)
	depts.Put("/:id", ctrl.Update)
}
