package policy

import (
	"chike_backend/internals/constants"
)

// TargetUser 被操作用户的快照。
type TargetUser struct {
	UserID  string
	StoreID string
	Roles   []string
}

// UserUpdate 本次更新里与权限相关的改动；nil 表示不改该字段。
type UserUpdate struct {
	Roles      *[]string
	StoreID    *string
	Deactivate bool
}

func hasAny(roles []string, wanted ...string) bool {
	for _, w := range wanted {
		for _, r := range roles {
			if r == w {
				return true
			}
		}
	}
	return false
}

// ValidateUserUpdate 修改他人账号（角色/门店/停用）的策略：
//   - 任何人不得修改自己的角色、不得停用自己；
//   - HQ_ADMIN 其余不受限；
//   - STORE_MANAGER 只能动本店员工，不能动店长/区域经理/总部管理员，
//     不能授予 HQ_ADMIN/REGION_MANAGER，不能把人转去其他门店；
//   - 其他角色一律拒绝。
func ValidateUserUpdate(actor Actor, target TargetUser, update UserUpdate) Decision {
	if actor.UserID == target.UserID {
		if update.Roles != nil {
			return Deny("不能修改自己的角色")
		}
		if update.Deactivate {
			return Deny("不能停用自己的账号")
		}
	}

	if actor.IsHQ() {
		return Allow()
	}

	if !actor.HasRole(constants.RoleStoreManager) {
		return Deny("没有管理用户的权限")
	}

	if !sameStore(actor.StoreID, target.StoreID) {
		return Deny("店长只能管理本门店的员工")
	}
	if hasAny(target.Roles, constants.RoleStoreManager, constants.RoleRegionManager, constants.RoleHQAdmin) {
		return Deny("店长不能修改店长及以上角色的账号")
	}
	if update.Roles != nil && hasAny(*update.Roles, constants.RoleHQAdmin, constants.RoleRegionManager) {
		return Deny("店长不能授予总部管理员或区域经理角色")
	}
	if update.StoreID != nil && *update.StoreID != actor.StoreID {
		return Deny("店长不能把员工转移到其他门店")
	}
	return Allow()
}
