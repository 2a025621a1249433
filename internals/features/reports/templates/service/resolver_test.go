package service

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"chike_backend/internals/constants"
	userModel "chike_backend/internals/features/users/user/model"
)

func strPtr(s string) *string { return &s }

func TestSchemaDiscriminator(t *testing.T) {
	tests := []struct {
		name string
		dept string
		user userModel.UserModel
		want string
	}{
		{"市场部按子部门", constants.DeptMarketing,
			userModel.UserModel{MarketingSubDept: strPtr(constants.MarketingOnline)}, "ONLINE"},
		{"市场部未填子部门为空", constants.DeptMarketing, userModel.UserModel{}, ""},
		{"护理部按护理岗位", constants.DeptNursing,
			userModel.UserModel{NursingRole: strPtr(constants.NursingRoleHead)}, "HEAD_NURSE"},
		{"护理部未填岗位为空", constants.DeptNursing, userModel.UserModel{}, ""},
		{"其他部门一律为空", constants.DeptFrontDesk,
			userModel.UserModel{NursingRole: strPtr(constants.NursingRoleNurse), MarketingSubDept: strPtr(constants.MarketingOffline)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SchemaDiscriminator(tt.dept, &tt.user))
		})
	}
}

// 用户级覆写优先于一切，且命中后不会触达数据库（db 传 nil 也能走通）。
func TestResolveSchema_CustomFormConfigOverride(t *testing.T) {
	doc := TemplateDoc{
		Version: TemplateVersion,
		Containers: []TemplateContainer{
			{ID: "c1", Title: "自定义容器", Fields: []TemplateField{
				{ID: "f1", Label: "自定义字段", Type: FieldNumber},
			}},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	user := userModel.UserModel{
		ID:               uuid.New(),
		CustomFormConfig: datatypes.JSON(raw),
	}

	schema, err := ResolveSchema(nil, ResolveInput{
		User:           &user,
		DepartmentID:   uuid.New(),
		DepartmentCode: constants.DeptFrontDesk,
	})
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.Equal(t, "custom:"+user.ID.String(), schema.ID)
	require.Len(t, schema.Sections, 1)
	assert.Equal(t, "c1.f1", schema.Sections[0].Fields[0].ID)
}
