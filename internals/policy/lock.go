package policy

import (
	"chike_backend/internals/constants"
)

// CanLockDate 锁定/解锁某门店某日期：
// 角色须在 LockCapable 内；除 HQ_ADMIN 外必须挂靠门店且只能操作本店。
func CanLockDate(actor Actor, storeID string) Decision {
	if actor.IsHQ() {
		return Allow()
	}
	if !actor.HasAnyRole(constants.RoleStoreManager, constants.RoleRegionManager) {
		return Deny("没有锁定日期的权限")
	}
	if actor.StoreID == "" {
		return Deny("未挂靠门店的账号不能锁定日期")
	}
	if !sameStore(actor.StoreID, storeID) {
		return Deny("只能锁定本门店的日期")
	}
	return Allow()
}

// CanEditReport 日报写入的统一闸口（锁定豁免集中在这里）：
//   - 日期未锁定：本人可写自己的日报；写他人走 CanEditUserReport；
//   - 日期已锁定：仅 HQ_ADMIN、或本店 STORE_MANAGER 可以越过锁继续编辑。
func CanEditReport(actor Actor, storeID, ownerUserID string, locked bool) Decision {
	if locked {
		if actor.IsHQ() {
			return Allow()
		}
		if actor.HasRole(constants.RoleStoreManager) && sameStore(actor.StoreID, storeID) {
			return Allow()
		}
		return Deny("该日期已锁定，不能修改历史日报")
	}
	if actor.UserID == ownerUserID {
		return Allow()
	}
	return CanEditUserReport(actor, storeID)
}
