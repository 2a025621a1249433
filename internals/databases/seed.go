package database

import (
	"log"

	"gorm.io/gorm/clause"

	"chike_backend/internals/configs"
	"chike_backend/internals/constants"
	deptModel "chike_backend/internals/features/org/departments/model"
	userModel "chike_backend/internals/features/users/user/model"
	helper "chike_backend/internals/helpers"
)

var defaultDepartments = map[string]string{
	constants.DeptConsultation: "咨询部",
	constants.DeptFrontDesk:    "前台",
	constants.DeptMedical:      "医疗部",
	constants.DeptNursing:      "护理部",
	constants.DeptMarketing:    "市场部",
	constants.DeptFinanceHR:    "财务人事部",
}

// SeedBootstrap 幂等初始化：六个标准部门 + 首个总部管理员。
// 管理员账号/密码取 BOOTSTRAP_ADMIN_ACCOUNT / BOOTSTRAP_ADMIN_PASSWORD，
// 密码未配置就跳过建号（只建部门）。
func SeedBootstrap() {
	for code, name := range defaultDepartments {
		dept := deptModel.DepartmentModel{Code: code, Name: name}
		if err := DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&dept).Error; err != nil {
			log.Printf("[ERROR] 部门初始化失败 code=%s: %v", code, err)
		}
	}

	account := configs.GetEnv("BOOTSTRAP_ADMIN_ACCOUNT", "admin")
	password := configs.GetEnv("BOOTSTRAP_ADMIN_PASSWORD", "")
	if password == "" {
		return
	}

	var cnt int64
	if err := DB.Model(&userModel.UserModel{}).Where("account = ?", account).Count(&cnt).Error; err != nil || cnt > 0 {
		return
	}
	hash, err := helper.HashPassword(password)
	if err != nil {
		log.Printf("[ERROR] 管理员密码哈希失败: %v", err)
		return
	}
	admin := userModel.UserModel{
		Account:      account,
		Name:         "总部管理员",
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := admin.SetRoles([]string{constants.RoleHQAdmin}); err != nil {
		return
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("[ERROR] 管理员初始化失败: %v", err)
		return
	}
	log.Printf("[SUCCESS] 初始管理员已创建 account=%s", account)
}
