package database

import (
	"log"

	flagModel "chike_backend/internals/features/configflags/model"
	dictModel "chike_backend/internals/features/dictionary/model"
	deptModel "chike_backend/internals/features/org/departments/model"
	storeModel "chike_backend/internals/features/org/stores/model"
	permModel "chike_backend/internals/features/permissions/consultation/model"
	reportModel "chike_backend/internals/features/reports/daily/model"
	lockModel "chike_backend/internals/features/reports/locks/model"
	templateModel "chike_backend/internals/features/reports/templates/model"
	authModel "chike_backend/internals/features/users/auth/model"
	userModel "chike_backend/internals/features/users/user/model"
)

// AutoMigrate 建表（受 DB_AUTOMIGRATE 开关控制，生产上走独立迁移）。
// 顺序：被引用的表在前。
func AutoMigrate() {
	err := DB.AutoMigrate(
		&deptModel.DepartmentModel{},
		&storeModel.StoreModel{},
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&authModel.RefreshToken{},
		&templateModel.DailyReportTemplateModel{},
		&reportModel.DailyReportModel{},
		&reportModel.ConsultationReportModel{},
		&lockModel.StoreDayLockModel{},
		&permModel.ConsultationViewPermissionModel{},
		&flagModel.ConfigFlagModel{},
		&dictModel.DictionaryItemModel{},
	)
	if err != nil {
		log.Fatalf("❌ 迁移失败: %v", err)
	}
	log.Println("✅ 迁移完成")
}
