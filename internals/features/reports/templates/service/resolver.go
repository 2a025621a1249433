package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	flagService "chike_backend/internals/features/configflags/service"
	templateModel "chike_backend/internals/features/reports/templates/model"
	userModel "chike_backend/internals/features/users/user/model"
)

// ErrNoSchema 既无自定义模板也无内置默认表单。
// 调用方渲染“未配置表单”状态，不作为错误状态码返回。
var ErrNoSchema = errors.New("该部门未配置日报表单")

type ResolveInput struct {
	User           *userModel.UserModel
	DepartmentID   uuid.UUID
	DepartmentCode string
}

// SchemaDiscriminator 子部门判别值（模板键的 schema_id 部分）：
// 市场部按子部门，护理部按护理岗位，其余为空串。
func SchemaDiscriminator(departmentCode string, user *userModel.UserModel) string {
	switch departmentCode {
	case constants.DeptMarketing:
		if user.MarketingSubDept != nil {
			return *user.MarketingSubDept
		}
	case constants.DeptNursing:
		if user.NursingRole != nil {
			return *user.NursingRole
		}
	}
	return ""
}

// ResolveSchema 解析用户应使用的日报表单：
//  1. 用户级覆写（custom_form_config）；
//  2. 匹配 (role, department, schema_id) 的自定义模板——
//     角色顺序：配置覆写的归属角色优先，其后按用户所持角色的优先级；
//  3. 部门内置默认 schema；
//  4. 都没有 → ErrNoSchema。
//
// 编译失败（版本不对、JSON 坏掉）一律视作该模板不存在，继续向下兜底，
// 绝不让坏模板打挂页面。
func ResolveSchema(db *gorm.DB, in ResolveInput) (*FormSchema, error) {
	user := in.User

	// 1) 用户级覆写
	if len(user.CustomFormConfig) > 0 {
		if schema, ok := CompileTemplate("custom:"+user.ID.String(), user.CustomFormConfig); ok {
			return schema, nil
		}
	}

	schemaID := SchemaDiscriminator(in.DepartmentCode, user)

	// 2) 自定义模板：归属角色覆写 → 用户角色优先级
	candidates := make([]string, 0, len(constants.RolePrecedence)+1)
	if override, err := flagService.GetRoleOverride(db, in.DepartmentCode); err == nil && override != "" {
		candidates = append(candidates, override)
	}
	for _, role := range constants.RolePrecedence {
		if user.HasRole(role) {
			candidates = append(candidates, role)
		}
	}

	for _, role := range candidates {
		var row templateModel.DailyReportTemplateModel
		err := db.Where("role = ? AND department_id = ? AND schema_id = ?",
			role, in.DepartmentID, schemaID).First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if schema, ok := CompileTemplate(row.ID.String(), row.ConfigJSON); ok {
			return schema, nil
		}
	}

	// 3) 内置默认
	if schema := BuiltinSchema(in.DepartmentCode); schema != nil {
		return schema, nil
	}

	// 4) 未配置
	return nil, ErrNoSchema
}
