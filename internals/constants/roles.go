package constants

import "fmt"

// 角色标签（能力集合，非层级：一个用户可同时持有多个）
const (
	RoleHQAdmin       = "HQ_ADMIN"       // 总部管理员，跨店不受限
	RoleRegionManager = "REGION_MANAGER" // 区域经理
	RoleStoreManager  = "STORE_MANAGER"  // 店长，限本店
	RoleDeptLead      = "DEPT_LEAD"      // 部门主管，限本店本部门
	RoleStaff         = "STAFF"          // 普通员工
)

// 护理岗位
const (
	NursingRoleHead      = "HEAD_NURSE"
	NursingRoleNurse     = "NURSE"
	NursingRoleAssistant = "ASSISTANT"
)

// 错误提示模板
const (
	ErrOnlyManagersCanAccess = "❌ 仅店长及以上角色可以访问 %s。"
	ErrOnlyHQCanAccess       = "❌ 仅总部管理员可以访问 %s。"
	ErrOnlyLeadsCanAccess    = "❌ 仅部门主管及以上角色可以访问 %s。"
)

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

func RoleErrorHQ(feature string) string {
	return fmt.Sprintf(ErrOnlyHQCanAccess, feature)
}

func RoleErrorLead(feature string) string {
	return fmt.Sprintf(ErrOnlyLeadsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStaff,
		RoleDeptLead,
		RoleStoreManager,
		RoleRegionManager,
		RoleHQAdmin,
	}

	// 模板查找时的角色优先级（越靠前越具体）
	RolePrecedence = []string{
		RoleHQAdmin,
		RoleRegionManager,
		RoleStoreManager,
		RoleDeptLead,
		RoleStaff,
	}

	ManagerAndAbove = []string{
		RoleStoreManager,
		RoleRegionManager,
		RoleHQAdmin,
	}

	LeadAndAbove = []string{
		RoleDeptLead,
		RoleStoreManager,
		RoleRegionManager,
		RoleHQAdmin,
	}

	// 可执行锁定/解锁历史日期的角色
	LockCapable = []string{
		RoleStoreManager,
		RoleRegionManager,
		RoleHQAdmin,
	}

	HQOnly = []string{
		RoleHQAdmin,
	}
)

func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
