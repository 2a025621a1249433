package service

import (
	"chike_backend/internals/constants"
)

// 内置默认 schema：部门没有配置自定义模板时的兜底表单。
// 统一走编译器，保证字段 ID 限定规则与自定义模板一致。

var builtinDocs = map[string]TemplateDoc{
	constants.DeptConsultation: {
		Version: TemplateVersion,
		Containers: []TemplateContainer{
			{
				ID: "core", Title: "核心指标", Type: ContainerGeneral,
				Fields: []TemplateField{
					{ID: "visit_cnt", Label: "到店人数", Type: FieldNumber, Required: true, MetricKey: "visit_cnt", Suffix: "人"},
					{ID: "deal_cnt", Label: "成交人数", Type: FieldNumber, Required: true, MetricKey: "deal_cnt", Suffix: "人"},
					{ID: "deal_amount", Label: "成交金额", Type: FieldMoney, Required: true, MetricKey: "deal_amount", Suffix: "元"},
					{ID: "new_customers", Label: "初诊人数", Type: FieldNumber, MetricKey: "new_customers", Suffix: "人"},
					{ID: "re_visit_cnt", Label: "复诊人数", Type: FieldNumber, MetricKey: "re_visit_cnt", Suffix: "人"},
					{ID: "deal_rate", Label: "成交率", Type: FieldCalculated, Formula: "deal_cnt / visit_cnt", Suffix: "%"},
				},
			},
			{
				ID: "detail", Title: "接诊明细", Type: ContainerDynamicList,
				Fields: []TemplateField{
					{
						ID: "visits", Label: "接诊记录", Type: FieldDynamicRows, AddRowLabel: "添加接诊",
						RowFields: []TemplateField{
							{ID: "channel", Label: "来源渠道", Type: FieldDynamicSelect, DynamicOptionsKey: "channel_source"},
							{ID: "project", Label: "咨询项目", Type: FieldText},
							{ID: "amount", Label: "金额", Type: FieldMoney, Suffix: "元"},
							{ID: "is_deal", Label: "是否成交", Type: FieldSelect, Options: []FieldOption{
								{Label: "成交", Value: "yes"}, {Label: "未成交", Value: "no"},
							}},
						},
					},
				},
			},
			{
				ID: "notes", Title: "工作总结", Type: ContainerGeneral,
				Fields: []TemplateField{
					{ID: "summary", Label: "今日总结", Type: FieldTextarea},
				},
			},
		},
	},
	constants.DeptFrontDesk: {
		Version: TemplateVersion,
		Containers: []TemplateContainer{
			{
				ID: "core", Title: "核心指标", Type: ContainerGeneral,
				Fields: []TemplateField{
					{ID: "appointment_cnt", Label: "预约数", Type: FieldNumber, Required: true, Suffix: "个"},
					{ID: "arrival_cnt", Label: "到诊数", Type: FieldNumber, Required: true, Suffix: "人"},
					{ID: "phone_in", Label: "来电数", Type: FieldNumber, Suffix: "通"},
					{ID: "cash_amount", Label: "收款金额", Type: FieldMoney, Suffix: "元"},
					{ID: "summary", Label: "备注", Type: FieldTextarea},
				},
			},
		},
	},
	constants.DeptMedical: {
		Version: TemplateVersion,
		Containers: []TemplateContainer{
			{
				ID: "core", Title: "诊疗情况", Type: ContainerGeneral,
				Fields: []TemplateField{
					{ID: "patient_cnt", Label: "接诊人数", Type: FieldNumber, Required: true, Suffix: "人"},
					{ID: "treatment_amount", Label: "治疗产值", Type: FieldMoney, Suffix: "元"},
					{ID: "summary", Label: "病例小结", Type: FieldTextarea},
				},
			},
		},
	},
	constants.DeptNursing: {
		Version: TemplateVersion,
		Containers: []TemplateContainer{
			{
				ID: "core", Title: "护理工作", Type: ContainerGeneral,
				Fields: []TemplateField{
					{ID: "assist_cnt", Label: "配台次数", Type: FieldNumber, Required: true, Suffix: "次"},
					{ID: "sterilize_done", Label: "消毒完成", Type: FieldSelect, Required: true, Options: []FieldOption{
						{Label: "已完成", Value: "yes"}, {Label: "未完成", Value: "no"},
					}},
					{ID: "summary", Label: "备注", Type: FieldTextarea},
				},
			},
		},
	},
	constants.DeptMarketing: {
		Version: TemplateVersion,
		Containers: []TemplateContainer{
			{
				ID: "core", Title: "市场数据", Type: ContainerGeneral,
				Fields: []TemplateField{
					{ID: "lead_cnt", Label: "新增线索", Type: FieldNumber, Required: true, Suffix: "条"},
					{ID: "convert_cnt", Label: "转化数", Type: FieldNumber, Suffix: "人"},
					{ID: "spend_amount", Label: "投放花费", Type: FieldMoney, Suffix: "元"},
					{ID: "channel", Label: "主投渠道", Type: FieldDynamicSelect, DynamicOptionsKey: "channel_source"},
					{ID: "summary", Label: "投放总结", Type: FieldTextarea},
				},
			},
		},
	},
	constants.DeptFinanceHR: {
		Version: TemplateVersion,
		Containers: []TemplateContainer{
			{
				ID: "core", Title: "收支与人事", Type: ContainerGeneral,
				Fields: []TemplateField{
					{ID: "income_amount", Label: "当日收入", Type: FieldMoney, Required: true, Suffix: "元"},
					{ID: "expense_amount", Label: "当日支出", Type: FieldMoney, Suffix: "元"},
					{ID: "attendance_abnormal", Label: "考勤异常", Type: FieldNumber, Suffix: "人"},
					{ID: "summary", Label: "备注", Type: FieldTextarea},
				},
			},
		},
	},
}

// BuiltinSchema 返回部门的内置默认 schema；没有则返回 nil。
func BuiltinSchema(departmentCode string) *FormSchema {
	doc, ok := builtinDocs[departmentCode]
	if !ok {
		return nil
	}
	schema, ok := CompileTemplateDoc("builtin:"+departmentCode, doc)
	if !ok {
		return nil
	}
	return schema
}
