package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileTemplate_VersionGate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"版本不是 2", `{"version":1,"containers":[{"id":"a","title":"T","type":"general","fields":[{"id":"f","label":"F","type":"number"}]}]}`},
		{"缺 containers", `{"version":2}`},
		{"containers 不是数组", `{"version":2,"containers":"oops"}`},
		{"非法 JSON", `{not json`},
		{"空文档", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, ok := CompileTemplate("s1", []byte(tt.raw))
			assert.False(t, ok)
			assert.Nil(t, schema)
		})
	}
}

func TestCompileTemplate_DropsEmptyContainers(t *testing.T) {
	raw := `{"version":2,"containers":[
		{"id":"a","title":"空的","type":"general","fields":[]},
		{"id":"b","title":"有字段","type":"general","fields":[{"id":"x","label":"X","type":"number"}]},
		{"id":"c","title":"也有","type":"general","fields":[{"id":"y","label":"Y","type":"text"}]}
	]}`
	schema, ok := CompileTemplate("s1", []byte(raw))
	require.True(t, ok)
	// section 数 = 非空容器数
	require.Len(t, schema.Sections, 2)
	assert.Equal(t, "b", schema.Sections[0].ID)
	assert.Equal(t, "c", schema.Sections[1].ID)
}

// 唯一容器因无字段被丢弃 → sections 为空数组（不是 nil）
func TestCompileTemplate_OnlyEmptyContainer(t *testing.T) {
	raw := `{"version":2,"containers":[{"id":"a","title":"T","type":"general","fields":[]}]}`
	schema, ok := CompileTemplate("s1", []byte(raw))
	require.True(t, ok)
	assert.NotNil(t, schema.Sections)
	assert.Empty(t, schema.Sections)
}

func TestCompileTemplate_FieldIDQualification(t *testing.T) {
	raw := `{"version":2,"containers":[
		{"id":"c1","title":"一","type":"general","fields":[{"id":"amount","label":"金额","type":"money","required":true,"suffix":"元","metricKey":"deal_amount"}]},
		{"id":"c2","title":"二","type":"general","fields":[{"id":"amount","label":"金额","type":"money"}]}
	]}`
	schema, ok := CompileTemplate("s1", []byte(raw))
	require.True(t, ok)

	// 同名字段靠容器前缀保证全局唯一
	assert.Equal(t, "c1.amount", schema.Sections[0].Fields[0].ID)
	assert.Equal(t, "c2.amount", schema.Sections[1].Fields[0].ID)

	f := schema.Sections[0].Fields[0]
	assert.True(t, f.Required)
	assert.Equal(t, "元", f.Suffix)
	assert.Equal(t, "deal_amount", f.MetricKey)
}

func TestCompileTemplate_DynamicRows(t *testing.T) {
	raw := `{"version":2,"containers":[
		{"id":"c1","title":"明细","type":"dynamic_list","fields":[
			{"id":"rows1","label":"记录","type":"dynamic_rows","addRowLabel":"添加",
			 "rowFields":[
				{"id":"amount","type":"number","label":"金额"},
				{"id":"channel","type":"dynamic_select","label":"渠道","dynamicOptionsKey":"channel_source"}
			 ]}
		]}
	]}`
	schema, ok := CompileTemplate("s1", []byte(raw))
	require.True(t, ok)
	require.Len(t, schema.Sections, 1)
	require.Len(t, schema.Sections[0].Fields, 1)

	f := schema.Sections[0].Fields[0]
	// 父字段限定，行内子字段保持局部 ID
	assert.Equal(t, "c1.rows1", f.ID)
	assert.Equal(t, FieldDynamicRows, f.Type)
	assert.Equal(t, "添加", f.AddRowLabel)
	require.Len(t, f.RowFields, 2)
	assert.Equal(t, "amount", f.RowFields[0].ID)
	// dynamic_select 原样透传
	assert.Equal(t, FieldDynamicSelect, f.RowFields[1].Type)
	assert.Equal(t, "channel_source", f.RowFields[1].DynamicOptionsKey)
}

// dynamic_rows 未声明 rowFields → 退化为普通标量字段
func TestCompileTemplate_DynamicRowsWithoutRowFields(t *testing.T) {
	raw := `{"version":2,"containers":[
		{"id":"c1","title":"T","type":"general","fields":[{"id":"rows1","label":"R","type":"dynamic_rows"}]}
	]}`
	schema, ok := CompileTemplate("s1", []byte(raw))
	require.True(t, ok)
	f := schema.Sections[0].Fields[0]
	assert.Equal(t, "c1.rows1", f.ID)
	assert.Empty(t, f.RowFields)
}

// 纯函数：同一输入编译两次，序列化结果逐字节一致
func TestCompileTemplate_Deterministic(t *testing.T) {
	raw := `{"version":2,"containers":[
		{"id":"c1","title":"一","type":"general","fields":[
			{"id":"a","label":"A","type":"number","required":true},
			{"id":"b","label":"B","type":"calculated","formula":"a * 2"}
		]},
		{"id":"c2","title":"二","type":"dynamic_list","fields":[
			{"id":"rows","label":"R","type":"dynamic_rows","rowFields":[{"id":"x","type":"text","label":"X"}]}
		]}
	]}`

	first, ok := CompileTemplate("s1", []byte(raw))
	require.True(t, ok)
	second, ok := CompileTemplate("s1", []byte(raw))
	require.True(t, ok)

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestCompileTemplate_SchemaEnvelope(t *testing.T) {
	raw := `{"version":2,"containers":[{"id":"c1","title":"一","type":"general","fields":[{"id":"a","label":"A","type":"text"}]}]}`
	schema, ok := CompileTemplate("tpl-9", []byte(raw))
	require.True(t, ok)
	assert.Equal(t, "tpl-9", schema.ID)
	assert.Equal(t, "动态日报", schema.Title)
	assert.NotEmpty(t, schema.Description)
}

func TestBuiltinSchema(t *testing.T) {
	s := BuiltinSchema("CONSULTATION")
	require.NotNil(t, s)
	assert.NotEmpty(t, s.Sections)
	// 内置模板同样遵守限定规则
	assert.Equal(t, "core.visit_cnt", s.Sections[0].Fields[0].ID)

	assert.Nil(t, BuiltinSchema("NOPE"))
}
