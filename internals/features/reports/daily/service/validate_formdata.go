package service

import (
	"strconv"
	"strings"

	templateService "chike_backend/internals/features/reports/templates/service"
)

// ValidateFormData 按当前编译出的 schema 校验 form_data：
// 必填标量字段必须存在且非空；必填 dynamic_rows 至少一行，
// 且每行内的必填子字段逐行校验。
// form_data 保持弱类型（模板运行时可配），只做存在性/非空校验，不做强类型化。
// 返回 字段ID → 错误消息 列表，空 map 即通过。
func ValidateFormData(schema *templateService.FormSchema, formData map[string]interface{}) map[string][]string {
	errs := make(map[string][]string)
	if schema == nil {
		return errs
	}

	for _, section := range schema.Sections {
		for _, field := range section.Fields {
			if field.Type == templateService.FieldDivider || field.Type == templateService.FieldCalculated {
				continue // 展示性/派生字段不参与校验
			}

			if field.Type == templateService.FieldDynamicRows {
				validateRows(field, formData[field.ID], errs)
				continue
			}

			if field.Required && isEmptyValue(formData[field.ID]) {
				errs[field.ID] = append(errs[field.ID], field.Label+" 为必填项")
			}
		}
	}
	return errs
}

func validateRows(field templateService.FormField, raw interface{}, errs map[string][]string) {
	rows, _ := raw.([]interface{})
	if field.Required && len(rows) == 0 {
		errs[field.ID] = append(errs[field.ID], field.Label+" 至少填写一行")
		return
	}
	for i, r := range rows {
		row, ok := r.(map[string]interface{})
		if !ok {
			errs[field.ID] = append(errs[field.ID], field.Label+" 行数据格式不正确")
			continue
		}
		for _, sub := range field.RowFields {
			if sub.Required && isEmptyValue(row[sub.ID]) {
				errs[field.ID] = append(errs[field.ID], field.Label+" 第"+strconv.Itoa(i+1)+"行 "+sub.Label+" 为必填项")
			}
		}
	}
}

func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []interface{}:
		return len(t) == 0
	default:
		// 数字 0 是合法填报值，不算空
		return false
	}
}

