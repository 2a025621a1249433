package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	templateService "chike_backend/internals/features/reports/templates/service"
)

func testSchema(t *testing.T) *templateService.FormSchema {
	t.Helper()
	raw := `{"version":2,"containers":[
		{"id":"core","title":"核心","type":"general","fields":[
			{"id":"visit_cnt","label":"到店人数","type":"number","required":true},
			{"id":"summary","label":"总结","type":"textarea"},
			{"id":"rate","label":"成交率","type":"calculated","formula":"a/b"}
		]},
		{"id":"detail","title":"明细","type":"dynamic_list","fields":[
			{"id":"rows","label":"接诊记录","type":"dynamic_rows","required":true,
			 "rowFields":[
				{"id":"amount","label":"金额","type":"money","required":true},
				{"id":"note","label":"备注","type":"text"}
			 ]}
		]}
	]}`
	schema, ok := templateService.CompileTemplate("s1", []byte(raw))
	require.True(t, ok)
	return schema
}

func TestValidateFormData_OK(t *testing.T) {
	schema := testSchema(t)
	errs := ValidateFormData(schema, map[string]interface{}{
		"core.visit_cnt": float64(12),
		"detail.rows": []interface{}{
			map[string]interface{}{"amount": float64(3000), "note": ""},
		},
	})
	assert.Empty(t, errs)
}

func TestValidateFormData_MissingRequiredScalar(t *testing.T) {
	schema := testSchema(t)
	errs := ValidateFormData(schema, map[string]interface{}{
		"detail.rows": []interface{}{
			map[string]interface{}{"amount": float64(1)},
		},
	})
	require.Contains(t, errs, "core.visit_cnt")
}

func TestValidateFormData_ZeroIsNotEmpty(t *testing.T) {
	schema := testSchema(t)
	errs := ValidateFormData(schema, map[string]interface{}{
		"core.visit_cnt": float64(0), // 今天没人到店也是合法填报
		"detail.rows": []interface{}{
			map[string]interface{}{"amount": float64(0)},
		},
	})
	assert.Empty(t, errs)
}

func TestValidateFormData_RequiredRows(t *testing.T) {
	schema := testSchema(t)

	// 必填 dynamic_rows 缺行
	errs := ValidateFormData(schema, map[string]interface{}{
		"core.visit_cnt": float64(1),
	})
	require.Contains(t, errs, "detail.rows")

	// 行内必填子字段缺失
	errs = ValidateFormData(schema, map[string]interface{}{
		"core.visit_cnt": float64(1),
		"detail.rows": []interface{}{
			map[string]interface{}{"note": "只有备注"},
		},
	})
	require.Contains(t, errs, "detail.rows")
}

func TestValidateFormData_BlankStringIsEmpty(t *testing.T) {
	schema := testSchema(t)
	errs := ValidateFormData(schema, map[string]interface{}{
		"core.visit_cnt": "   ",
		"detail.rows": []interface{}{
			map[string]interface{}{"amount": float64(1)},
		},
	})
	require.Contains(t, errs, "core.visit_cnt")
}

func TestValidateFormData_NilSchema(t *testing.T) {
	assert.Empty(t, ValidateFormData(nil, map[string]interface{}{"x": 1}))
}
