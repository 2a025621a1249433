package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chike_backend/internals/constants"
)

func TestConsultationGrant_ActiveAt(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		grant ConsultationGrant
		want  bool
	}{
		{"有效且未设过期", ConsultationGrant{IsActive: true}, true},
		{"有效且未过期", ConsultationGrant{IsActive: true, ValidUntil: &future}, true},
		{"valid_until 过期视同失效，即使 is_active=true", ConsultationGrant{IsActive: true, ValidUntil: &past}, false},
		{"已停用", ConsultationGrant{IsActive: false, ValidUntil: &future}, false},
		{"恰好到期", ConsultationGrant{IsActive: true, ValidUntil: &now}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.grant.ActiveAt(now))
		})
	}
}

func TestCanViewConsultation(t *testing.T) {
	now := time.Now()

	// 咨询部员工（本店）
	consult := Actor{
		UserID: "u1", Roles: []string{constants.RoleStaff},
		StoreID: "s1", DepartmentCode: constants.DeptConsultation,
	}
	assert.True(t, CanViewConsultation(consult, "s1", nil, now).Allowed)
	assert.False(t, CanViewConsultation(consult, "s2", nil, now).Allowed, "咨询部身份不跨店")

	// 非咨询部员工，无授权
	staff := Actor{UserID: "u2", Roles: []string{constants.RoleStaff}, StoreID: "s1", DepartmentCode: constants.DeptNursing}
	assert.False(t, CanViewConsultation(staff, "s1", nil, now).Allowed)

	// 有效授权
	future := now.Add(24 * time.Hour)
	grant := &ConsultationGrant{IsActive: true, ValidUntil: &future}
	assert.True(t, CanViewConsultation(staff, "s1", grant, now).Allowed)

	// 过期授权
	past := now.Add(-24 * time.Hour)
	expired := &ConsultationGrant{IsActive: true, ValidUntil: &past}
	assert.False(t, CanViewConsultation(staff, "s1", expired, now).Allowed)

	// 角色豁免
	assert.True(t, CanViewConsultation(Actor{UserID: "hq", Roles: []string{constants.RoleHQAdmin}}, "s1", nil, now).Allowed)
	assert.True(t, CanViewConsultation(managerOf("s1"), "s1", nil, now).Allowed)
	assert.False(t, CanViewConsultation(managerOf("s2"), "s1", nil, now).Allowed)
}

func TestCanExportConsultation(t *testing.T) {
	now := time.Now()
	staff := Actor{UserID: "u2", Roles: []string{constants.RoleStaff}, StoreID: "s1"}

	assert.False(t, CanExportConsultation(staff, "s1", nil, now).Allowed)

	grantNoExport := &ConsultationGrant{IsActive: true}
	assert.False(t, CanExportConsultation(staff, "s1", grantNoExport, now).Allowed, "授权未勾选导出")

	grantExport := &ConsultationGrant{IsActive: true, CanExport: true}
	assert.True(t, CanExportConsultation(staff, "s1", grantExport, now).Allowed)

	assert.True(t, CanExportConsultation(managerOf("s1"), "s1", nil, now).Allowed)
}
