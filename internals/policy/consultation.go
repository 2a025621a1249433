package policy

import (
	"time"

	"chike_backend/internals/constants"
)

// ConsultationGrant 是 ConsultationViewPermission 行的快照，
// 由调用方在请求时实时读库（不缓存，吊销即刻生效）。
type ConsultationGrant struct {
	CanViewAll   bool
	CanViewStats bool
	CanExport    bool
	ValidUntil   *time.Time
	IsActive     bool
}

// ActiveAt 授权在 now 时刻是否有效；valid_until 过期视同失效，
// 即使 is_active 仍为 true。
func (g ConsultationGrant) ActiveAt(now time.Time) bool {
	if !g.IsActive {
		return false
	}
	if g.ValidUntil != nil && !now.Before(*g.ValidUntil) {
		return false
	}
	return true
}

// CanViewConsultation 查看咨询记录：
// 咨询部员工、HQ_ADMIN、本店 STORE_MANAGER，或持有效授权者。
func CanViewConsultation(actor Actor, storeID string, grant *ConsultationGrant, now time.Time) Decision {
	if actor.DepartmentCode == constants.DeptConsultation && sameStore(actor.StoreID, storeID) {
		return Allow()
	}
	if actor.IsHQ() {
		return Allow()
	}
	if actor.HasRole(constants.RoleStoreManager) && sameStore(actor.StoreID, storeID) {
		return Allow()
	}
	if grant != nil && grant.ActiveAt(now) {
		return Allow()
	}
	return Deny("没有查看该门店咨询记录的权限")
}

// CanExportConsultation 导出咨询/团队数据：
// HQ_ADMIN、本店 STORE_MANAGER，或持有效授权且勾选了 can_export。
func CanExportConsultation(actor Actor, storeID string, grant *ConsultationGrant, now time.Time) Decision {
	if actor.IsHQ() {
		return Allow()
	}
	if actor.HasRole(constants.RoleStoreManager) && sameStore(actor.StoreID, storeID) {
		return Allow()
	}
	if grant != nil && grant.ActiveAt(now) && grant.CanExport {
		return Allow()
	}
	return Deny("没有导出该门店数据的权限")
}
