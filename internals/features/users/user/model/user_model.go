package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
)

// UserModel 对应 users 表。
// roles 以 JSON 数组存储，读出后只在 AfterFind 解析一次，
// 业务层一律通过 RoleList() 取，不再各处重复解析。
type UserModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Account      string         `gorm:"size:50;not null;uniqueIndex" json:"account"`
	Name         string         `gorm:"size:50;not null" json:"name"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Roles        datatypes.JSON `gorm:"type:jsonb;not null;default:'[\"STAFF\"]'" json:"roles"`

	StoreID            *uuid.UUID     `gorm:"type:uuid;index" json:"store_id,omitempty"`      // null = 总部账号
	DepartmentID       *uuid.UUID     `gorm:"type:uuid;index" json:"department_id,omitempty"` // null = 不挂部门
	ExtraDepartmentIDs datatypes.JSON `gorm:"type:jsonb" json:"extra_department_ids,omitempty"`
	NursingRole        *string        `gorm:"size:20" json:"nursing_role,omitempty"`
	MarketingSubDept   *string        `gorm:"size:20" json:"marketing_sub_dept,omitempty"`

	// 管理员针对单个用户覆写的表单模板（见日报模板编译器）
	CustomFormConfig datatypes.JSON `gorm:"type:jsonb" json:"custom_form_config,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	roleList []string `gorm:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

// AfterFind 在持久层边界解析一次 roles。
func (u *UserModel) AfterFind(tx *gorm.DB) error {
	return u.parseRoles()
}

func (u *UserModel) parseRoles() error {
	u.roleList = nil
	if len(u.Roles) == 0 {
		return nil
	}
	var roles []string
	if err := json.Unmarshal(u.Roles, &roles); err != nil {
		// 历史脏数据不致命：当作无角色处理
		return nil
	}
	u.roleList = roles
	return nil
}

// RoleList 返回解析后的角色列表（非空保证至少 STAFF）。
func (u *UserModel) RoleList() []string {
	if u.roleList == nil {
		_ = u.parseRoles()
	}
	if len(u.roleList) == 0 {
		return []string{constants.RoleStaff}
	}
	return u.roleList
}

// SetRoles 写入角色列表（序列化回 JSON 列）。
func (u *UserModel) SetRoles(roles []string) error {
	if len(roles) == 0 {
		roles = []string{constants.RoleStaff}
	}
	b, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	u.Roles = datatypes.JSON(b)
	u.roleList = roles
	return nil
}

func (u *UserModel) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}

// ExtraDepartments 解析副部门列表。
func (u *UserModel) ExtraDepartments() []string {
	if len(u.ExtraDepartmentIDs) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(u.ExtraDepartmentIDs, &ids); err != nil {
		return nil
	}
	return ids
}
