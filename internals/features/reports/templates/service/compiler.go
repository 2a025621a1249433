// 模板编译器：把管理员配置的 version=2 模板文档编译成
// 可渲染的表单 schema（同时也是 form_data 的存储契约）。
// 纯函数，不读库；同一输入编译两次输出逐字节一致。
package service

import (
	"encoding/json"
)

// ========== 输入：模板文档（version=2） ==========

const TemplateVersion = 2

// 容器类型
const (
	ContainerGeneral     = "general"
	ContainerDynamicList = "dynamic_list"
)

// 字段类型
const (
	FieldNumber        = "number"
	FieldMoney         = "money"
	FieldText          = "text"
	FieldTextarea      = "textarea"
	FieldDynamicSelect = "dynamic_select"
	FieldCalculated    = "calculated"
	FieldSelect        = "select"
	FieldDivider       = "divider"
	FieldDynamicRows   = "dynamic_rows"
)

type TemplateDoc struct {
	Version    int                 `json:"version"`
	Containers []TemplateContainer `json:"containers"`
}

type TemplateContainer struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Type   string          `json:"type"` // general | dynamic_list
	Fields []TemplateField `json:"fields"`
}

type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type TemplateField struct {
	ID                string          `json:"id"`
	Label             string          `json:"label"`
	Type              string          `json:"type"`
	Required          bool            `json:"required,omitempty"`
	Hint              string          `json:"hint,omitempty"`
	Suffix            string          `json:"suffix,omitempty"`
	DynamicOptionsKey string          `json:"dynamicOptionsKey,omitempty"`
	MetricKey         string          `json:"metricKey,omitempty"`
	Formula           string          `json:"formula,omitempty"`
	Options           []FieldOption   `json:"options,omitempty"`
	RowFields         []TemplateField `json:"rowFields,omitempty"`
	AddRowLabel       string          `json:"addRowLabel,omitempty"`
}

// ========== 输出：表单 schema ==========

type FormSchema struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Sections    []FormSection `json:"sections"`
}

type FormSection struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []FormField `json:"fields"`
}

type FormField struct {
	ID                string        `json:"id"`
	Label             string        `json:"label"`
	Type              string        `json:"type"`
	Required          bool          `json:"required"`
	Hint              string        `json:"hint,omitempty"`
	Suffix            string        `json:"suffix,omitempty"`
	DynamicOptionsKey string        `json:"dynamicOptionsKey,omitempty"`
	MetricKey         string        `json:"metricKey,omitempty"`
	Formula           string        `json:"formula,omitempty"`
	Options           []FieldOption `json:"options,omitempty"`
	RowFields         []FormField   `json:"rowFields,omitempty"`
	AddRowLabel       string        `json:"addRowLabel,omitempty"`
}

const schemaDescription = "由门店日报模板编译生成"

// CompileTemplate 解析并编译 JSON 模板文档。
// version ≠ 2、containers 缺失或非数组时按“无模板”处理（返回 false），
// 调用方回退到内置默认 schema 或“未配置表单”状态。
func CompileTemplate(schemaID string, raw []byte) (*FormSchema, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var doc TemplateDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false
	}
	return CompileTemplateDoc(schemaID, doc)
}

// CompileTemplateDoc 编译已解析的模板文档。
// 字段 ID 统一限定为 "{containerId}.{fieldId}"，保证跨容器全局唯一；
// 容器 ID 在文档内的唯一性由调用方（模板保存接口）负责。
// dynamic_rows 的行内子字段保持行内局部 ID，不做限定。
func CompileTemplateDoc(schemaID string, doc TemplateDoc) (*FormSchema, bool) {
	if doc.Version != TemplateVersion {
		return nil, false
	}
	if doc.Containers == nil {
		return nil, false
	}

	schema := &FormSchema{
		ID:          schemaID,
		Title:       "动态日报",
		Description: schemaDescription,
		Sections:    []FormSection{},
	}

	for _, container := range doc.Containers {
		// 空容器不渲染，直接丢弃
		if len(container.Fields) == 0 {
			continue
		}

		section := FormSection{
			ID:     container.ID,
			Title:  container.Title,
			Fields: make([]FormField, 0, len(container.Fields)),
		}

		for _, f := range container.Fields {
			qualifiedID := container.ID + "." + f.ID

			if f.Type == FieldDynamicRows && len(f.RowFields) > 0 {
				section.Fields = append(section.Fields, FormField{
					ID:          qualifiedID,
					Label:       f.Label,
					Type:        FieldDynamicRows,
					Required:    f.Required,
					Hint:        f.Hint,
					AddRowLabel: f.AddRowLabel,
					RowFields:   compileRowFields(f.RowFields),
				})
				continue
			}

			section.Fields = append(section.Fields, FormField{
				ID:                qualifiedID,
				Label:             f.Label,
				Type:              f.Type,
				Required:          f.Required,
				Hint:              f.Hint,
				Suffix:            f.Suffix,
				DynamicOptionsKey: f.DynamicOptionsKey,
				MetricKey:         f.MetricKey,
				Formula:           f.Formula,
				Options:           f.Options,
			})
		}

		schema.Sections = append(schema.Sections, section)
	}

	return schema, true
}

// compileRowFields 行内子字段原样透传（含 dynamic_select），ID 不限定。
func compileRowFields(rowFields []TemplateField) []FormField {
	out := make([]FormField, 0, len(rowFields))
	for _, rf := range rowFields {
		out = append(out, FormField{
			ID:                rf.ID,
			Label:             rf.Label,
			Type:              rf.Type,
			Required:          rf.Required,
			Hint:              rf.Hint,
			Suffix:            rf.Suffix,
			DynamicOptionsKey: rf.DynamicOptionsKey,
			MetricKey:         rf.MetricKey,
			Formula:           rf.Formula,
			Options:           rf.Options,
		})
	}
	return out
}
