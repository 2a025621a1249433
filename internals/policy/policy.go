// Package policy 是纯粹的访问策略评估器：
// 每个动作一个函数，输入 (actor, resource)，输出 Decision，
// 不读库、不碰 HTTP，可单测。
package policy

import (
	"chike_backend/internals/constants"
)

// Actor 是当前请求的用户快照（来自会话 claims）。
type Actor struct {
	UserID         string
	Roles          []string
	StoreID        string // 空 = 总部级账号
	DepartmentID   string
	DepartmentCode string
	NursingRole    string
}

// Decision 是策略评估结果。拒绝时 Reason 为面向用户的说明。
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if a.HasRole(r) {
			return true
		}
	}
	return false
}

// IsHQ 总部管理员，跨店不受限。
func (a Actor) IsHQ() bool {
	return a.HasRole(constants.RoleHQAdmin)
}

// sameStore 两个门店 ID 相同且非空。
func sameStore(a, b string) bool {
	return a != "" && a == b
}

// CanViewTeamReports 查看团队报表列表：
// HQ_ADMIN 任意门店；REGION_MANAGER/STORE_MANAGER 限本店；
// DEPT_LEAD 限本店本部门。
func CanViewTeamReports(actor Actor, storeID, departmentID string) Decision {
	if actor.IsHQ() {
		return Allow()
	}
	if actor.HasAnyRole(constants.RoleRegionManager, constants.RoleStoreManager) {
		if sameStore(actor.StoreID, storeID) {
			return Allow()
		}
		return Deny("只能查看本门店的团队日报")
	}
	if actor.HasRole(constants.RoleDeptLead) {
		if !sameStore(actor.StoreID, storeID) {
			return Deny("只能查看本门店的团队日报")
		}
		if departmentID == "" || departmentID != actor.DepartmentID {
			return Deny("部门主管只能查看本部门的日报")
		}
		return Allow()
	}
	return Deny("没有查看团队日报的权限")
}

// CanEditUserReport 编辑他人日报：仅 STORE_MANAGER（限本店）或 HQ_ADMIN。
func CanEditUserReport(actor Actor, targetStoreID string) Decision {
	if actor.IsHQ() {
		return Allow()
	}
	if actor.HasRole(constants.RoleStoreManager) {
		if sameStore(actor.StoreID, targetStoreID) {
			return Allow()
		}
		return Deny("店长只能编辑本门店员工的日报")
	}
	return Deny("没有编辑他人日报的权限")
}

// CanManageTemplates 日报模板配置：仅总部管理员。
func CanManageTemplates(actor Actor) Decision {
	if actor.IsHQ() {
		return Allow()
	}
	return Deny("仅总部管理员可以配置日报模板")
}

// CanManageStores 门店增删改：仅总部管理员。
func CanManageStores(actor Actor) Decision {
	if actor.IsHQ() {
		return Allow()
	}
	return Deny("仅总部管理员可以管理门店")
}

// CanManageFlags 配置项管理：GLOBAL 仅总部；STORE 级允许本店店长。
func CanManageFlags(actor Actor, scope, storeID string) Decision {
	if actor.IsHQ() {
		return Allow()
	}
	if scope == "STORE" && actor.HasRole(constants.RoleStoreManager) && sameStore(actor.StoreID, storeID) {
		return Allow()
	}
	return Deny("没有管理该配置项的权限")
}
