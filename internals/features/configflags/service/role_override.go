package service

import (
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"chike_backend/internals/features/configflags/model"
)

// 配置键：部门日报归属角色覆写表。
// value 形如 {"default":"AUTO","NURSING":"HEAD_NURSE","MARKETING":"DEPT_LEAD"}，
// AUTO 表示按用户自身角色优先级解析。
const KeyReportRoleOverride = "report_role_override"

const RoleAuto = "AUTO"

// GetRoleOverride 返回某部门日报模板的归属角色；
// 未配置或配置为 AUTO 时返回空串。
func GetRoleOverride(db *gorm.DB, departmentCode string) (string, error) {
	var flag model.ConfigFlagModel
	err := db.Where("scope = ? AND store_id IS NULL AND key = ? AND is_active = true",
		model.ScopeGlobal, KeyReportRoleOverride).First(&flag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	var m map[string]string
	if err := json.Unmarshal(flag.Value, &m); err != nil {
		// 配置坏了不拦业务，当作未配置
		return "", nil
	}

	role := strings.TrimSpace(m[departmentCode])
	if role == "" {
		role = strings.TrimSpace(m["default"])
	}
	if role == "" || strings.EqualFold(role, RoleAuto) {
		return "", nil
	}
	return role, nil
}
