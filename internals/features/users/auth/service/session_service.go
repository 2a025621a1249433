package service

import (
	"gorm.io/gorm"

	deptModel "chike_backend/internals/features/org/departments/model"
	storeModel "chike_backend/internals/features/org/stores/model"
	"chike_backend/internals/features/users/auth/dto"
	userModel "chike_backend/internals/features/users/user/model"
)

// LoadDepartment 取用户主部门，没挂部门返回 nil。
func LoadDepartment(db *gorm.DB, user *userModel.UserModel) *deptModel.DepartmentModel {
	if user.DepartmentID == nil {
		return nil
	}
	var dept deptModel.DepartmentModel
	if err := db.First(&dept, "id = ?", *user.DepartmentID).Error; err != nil {
		return nil
	}
	return &dept
}

// BuildSession 组装登录态快照。passwordWeak 只在拿得到明文的场合（登录）为真值。
func BuildSession(db *gorm.DB, user *userModel.UserModel, passwordWeak bool) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:           user.ID,
		Name:         user.Name,
		Account:      user.Account,
		Roles:        user.RoleList(),
		NursingRole:  user.NursingRole,
		PasswordWeak: passwordWeak,
	}
	if user.StoreID != nil {
		s := user.StoreID.String()
		resp.StoreID = &s
		var store storeModel.StoreModel
		if err := db.First(&store, "id = ?", *user.StoreID).Error; err == nil {
			resp.StoreName = store.Name
		}
	}
	if dept := LoadDepartment(db, user); dept != nil {
		d := dept.ID.String()
		resp.DepartmentID = &d
		resp.DepartmentName = dept.Name
		resp.DepartmentCode = dept.Code
	}
	return resp
}
