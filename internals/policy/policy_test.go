package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chike_backend/internals/constants"
)

func managerOf(store string) Actor {
	return Actor{
		UserID:  "mgr-1",
		Roles:   []string{constants.RoleStoreManager},
		StoreID: store,
	}
}

func TestCanViewTeamReports(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		storeID string
		deptID  string
		want    bool
	}{
		{
			name:    "总部管理员可看任意门店",
			actor:   Actor{UserID: "u1", Roles: []string{constants.RoleHQAdmin}},
			storeID: "s2",
			want:    true,
		},
		{
			name:    "店长可看本店",
			actor:   managerOf("s1"),
			storeID: "s1",
			want:    true,
		},
		{
			name:    "店长不可看他店",
			actor:   managerOf("s1"),
			storeID: "s2",
			want:    false,
		},
		{
			name: "部门主管限本店本部门",
			actor: Actor{
				UserID: "u3", Roles: []string{constants.RoleDeptLead},
				StoreID: "s1", DepartmentID: "d1",
			},
			storeID: "s1",
			deptID:  "d1",
			want:    true,
		},
		{
			name: "部门主管跨部门被拒",
			actor: Actor{
				UserID: "u3", Roles: []string{constants.RoleDeptLead},
				StoreID: "s1", DepartmentID: "d1",
			},
			storeID: "s1",
			deptID:  "d2",
			want:    false,
		},
		{
			name:    "普通员工被拒",
			actor:   Actor{UserID: "u4", Roles: []string{constants.RoleStaff}, StoreID: "s1"},
			storeID: "s1",
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanViewTeamReports(tt.actor, tt.storeID, tt.deptID)
			assert.Equal(t, tt.want, got.Allowed)
			if !tt.want {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

// 店长编辑 storeId ≠ 本店 的用户，无论对方持何角色组合，一律拒绝。
func TestCanEditUserReport_CrossStoreAlwaysDenied(t *testing.T) {
	actor := managerOf("s1")
	for _, targetRoles := range [][]string{
		{constants.RoleStaff},
		{constants.RoleDeptLead},
		{constants.RoleStoreManager},
		{constants.RoleHQAdmin},
		{constants.RoleStaff, constants.RoleDeptLead, constants.RoleStoreManager},
		nil,
	} {
		_ = targetRoles // 目标角色不影响跨店判定
		d := CanEditUserReport(actor, "s2")
		assert.False(t, d.Allowed, "跨店编辑必须被拒")
	}
	assert.True(t, CanEditUserReport(actor, "s1").Allowed)
	assert.True(t, CanEditUserReport(Actor{UserID: "hq", Roles: []string{constants.RoleHQAdmin}}, "s2").Allowed)
}

func TestValidateUserUpdate_NoRoleElevationByManager(t *testing.T) {
	actor := managerOf("s1")
	target := TargetUser{UserID: "u9", StoreID: "s1", Roles: []string{constants.RoleStaff}}

	for _, roles := range [][]string{
		{constants.RoleHQAdmin},
		{constants.RoleRegionManager},
		{constants.RoleStaff, constants.RoleHQAdmin},
		{constants.RoleDeptLead, constants.RoleRegionManager},
	} {
		r := roles
		d := ValidateUserUpdate(actor, target, UserUpdate{Roles: &r})
		assert.False(t, d.Allowed, "店长不能授予 %v", roles)
	}

	// 授予 DEPT_LEAD 是允许的
	lead := []string{constants.RoleDeptLead}
	assert.True(t, ValidateUserUpdate(actor, target, UserUpdate{Roles: &lead}).Allowed)
}

func TestValidateUserUpdate_SelfTargetingDenied(t *testing.T) {
	// 不论持什么角色，都不能改自己的角色、不能停用自己
	for _, roles := range [][]string{
		{constants.RoleHQAdmin},
		{constants.RoleStoreManager},
		{constants.RoleStaff},
	} {
		actor := Actor{UserID: "me", Roles: roles, StoreID: "s1"}
		target := TargetUser{UserID: "me", StoreID: "s1", Roles: roles}

		newRoles := []string{constants.RoleStaff}
		assert.False(t, ValidateUserUpdate(actor, target, UserUpdate{Roles: &newRoles}).Allowed)
		assert.False(t, ValidateUserUpdate(actor, target, UserUpdate{Deactivate: true}).Allowed)
	}
}

func TestValidateUserUpdate_ManagerScope(t *testing.T) {
	actor := managerOf("s1")

	// 跨店
	d := ValidateUserUpdate(actor, TargetUser{UserID: "u2", StoreID: "s2", Roles: []string{constants.RoleStaff}}, UserUpdate{})
	assert.False(t, d.Allowed)

	// 动同级/上级
	d = ValidateUserUpdate(actor, TargetUser{UserID: "u3", StoreID: "s1", Roles: []string{constants.RoleStoreManager}}, UserUpdate{})
	assert.False(t, d.Allowed)

	// 转店
	other := "s2"
	d = ValidateUserUpdate(actor, TargetUser{UserID: "u4", StoreID: "s1", Roles: []string{constants.RoleStaff}}, UserUpdate{StoreID: &other})
	assert.False(t, d.Allowed)

	// 本店普通员工正常改
	same := "s1"
	d = ValidateUserUpdate(actor, TargetUser{UserID: "u4", StoreID: "s1", Roles: []string{constants.RoleStaff}}, UserUpdate{StoreID: &same})
	assert.True(t, d.Allowed)
}

func TestCanLockDate(t *testing.T) {
	assert.True(t, CanLockDate(Actor{UserID: "hq", Roles: []string{constants.RoleHQAdmin}}, "s9").Allowed)
	assert.True(t, CanLockDate(managerOf("s1"), "s1").Allowed)
	assert.False(t, CanLockDate(managerOf("s1"), "s2").Allowed)
	// 未挂靠门店的非总部账号
	noStore := Actor{UserID: "u1", Roles: []string{constants.RoleStoreManager}}
	assert.False(t, CanLockDate(noStore, "s1").Allowed)
	assert.False(t, CanLockDate(Actor{UserID: "u2", Roles: []string{constants.RoleStaff}, StoreID: "s1"}, "s1").Allowed)
}

// 锁定后普通角色被拒，解锁后恢复；HQ_ADMIN 与本店店长豁免。
func TestCanEditReport_LockGate(t *testing.T) {
	staff := Actor{UserID: "u1", Roles: []string{constants.RoleStaff}, StoreID: "s1"}

	assert.True(t, CanEditReport(staff, "s1", "u1", false).Allowed, "未锁定可写自己的日报")
	assert.False(t, CanEditReport(staff, "s1", "u1", true).Allowed, "锁定后普通员工被拒")
	assert.True(t, CanEditReport(staff, "s1", "u1", false).Allowed, "解锁后恢复")

	assert.True(t, CanEditReport(Actor{UserID: "hq", Roles: []string{constants.RoleHQAdmin}}, "s1", "u1", true).Allowed)
	assert.True(t, CanEditReport(managerOf("s1"), "s1", "u1", true).Allowed)
	assert.False(t, CanEditReport(managerOf("s2"), "s1", "u1", true).Allowed, "他店店长不豁免")

	// 未锁定时写他人：仍需 CanEditUserReport
	assert.False(t, CanEditReport(staff, "s1", "u2", false).Allowed)
	assert.True(t, CanEditReport(managerOf("s1"), "s1", "u2", false).Allowed)
}
