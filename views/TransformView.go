package views

import (
	"net/http"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/GrainArc/GeoPrep/services"
	"github.com/GrainArc/GeoPrep/transforms"
	"github.com/gin-gonic/gin"
)

type splitData struct {
	Field     string `json:"field" binding:"required"`
	Delimiter string `json:"delimiter" binding:"required"`
	Trim      bool   `json:"trim"`
	MaxParts  int    `json:"maxParts"`
}

// SplitColumn 按分隔符把一列拆成多列
func (pc *PrepController) SplitColumn(c *gin.Context) {
	var jsonData splitData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	layer, err := pc.Mutation.Apply("字段拆分: "+jsonData.Field, func(records []geodata.Record) ([]geodata.Record, error) {
		opts := transforms.SplitOptions{
			Delimiter: jsonData.Delimiter,
			Trim:      jsonData.Trim,
			MaxParts:  jsonData.MaxParts,
		}
		return transforms.SplitColumn(records, jsonData.Field, opts), nil
	})
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, nil)
}

type combineData struct {
	Fields      []string `json:"fields" binding:"required"`
	OutputField string   `json:"outputField" binding:"required"`
	Delimiter   string   `json:"delimiter"`
	SkipBlanks  bool     `json:"skipBlanks"`
}

// CombineColumns 把多列拼成一列
func (pc *PrepController) CombineColumns(c *gin.Context) {
	var jsonData combineData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	layer, err := pc.Mutation.Apply("字段合并: "+jsonData.OutputField, func(records []geodata.Record) ([]geodata.Record, error) {
		opts := transforms.CombineOptions{
			Delimiter:   jsonData.Delimiter,
			OutputField: jsonData.OutputField,
			SkipBlanks:  jsonData.SkipBlanks,
		}
		return transforms.CombineColumns(records, jsonData.Fields, opts), nil
	})
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, nil)
}

type replaceData struct {
	Field          string `json:"field" binding:"required"`
	Find           string `json:"find"`
	Replace        string `json:"replace"`
	TrimWhitespace bool   `json:"trimWhitespace"`
	CollapseSpaces bool   `json:"collapseSpaces"`
	CaseTransform  string `json:"caseTransform"`
}

// ReplaceText 文本查找替换和清洗
func (pc *PrepController) ReplaceText(c *gin.Context) {
	var jsonData replaceData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	layer, err := pc.Mutation.Apply("文本替换: "+jsonData.Field, func(records []geodata.Record) ([]geodata.Record, error) {
		opts := transforms.ReplaceOptions{
			Find:           jsonData.Find,
			Replace:        jsonData.Replace,
			TrimWhitespace: jsonData.TrimWhitespace,
			CollapseSpaces: jsonData.CollapseSpaces,
			CaseTransform:  jsonData.CaseTransform,
		}
		return transforms.ReplaceText(records, jsonData.Field, opts), nil
	})
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, nil)
}

type convertData struct {
	Field      string `json:"field" binding:"required"`
	TargetType string `json:"targetType" binding:"required"`
}

// ConvertField 字段类型转换，返回转换失败的数量
func (pc *PrepController) ConvertField(c *gin.Context) {
	var jsonData convertData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	var failures int
	layer, err := pc.Mutation.Apply("类型转换: "+jsonData.Field, func(records []geodata.Record) ([]geodata.Record, error) {
		res := transforms.TypeConvert(records, jsonData.Field, jsonData.TargetType)
		failures = res.Failures
		return res.Records, nil
	})
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, gin.H{"failures": failures})
}

type dedupeData struct {
	Fields []string `json:"fields" binding:"required"`
	Keep   string   `json:"keep"`
}

// Deduplicate 按指定字段组合去重，返回删除的数量
func (pc *PrepController) Deduplicate(c *gin.Context) {
	var jsonData dedupeData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	var removed int
	layer, err := pc.Mutation.Apply("数据去重", func(records []geodata.Record) ([]geodata.Record, error) {
		res := transforms.Deduplicate(records, jsonData.Fields, jsonData.Keep)
		removed = res.Removed
		return res.Records, nil
	})
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, gin.H{"removed": removed})
}

type joinData struct {
	LeftKey   string                   `json:"leftKey" binding:"required"`
	RightKey  string                   `json:"rightKey" binding:"required"`
	Fields    []string                 `json:"fields"`
	RowFields []string                 `json:"rowFields"`
	Rows      []map[string]interface{} `json:"rows" binding:"required"`
}

// JoinData 按键值从外部表格关联字段，返回匹配与未匹配数量
func (pc *PrepController) JoinData(c *gin.Context) {
	var jsonData joinData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	joinRows := geodata.FromRows("join", jsonData.Rows, jsonData.RowFields).Records
	var matched, unmatched int
	layer, err := pc.Mutation.Apply("数据关联: "+jsonData.LeftKey, func(records []geodata.Record) ([]geodata.Record, error) {
		res := transforms.JoinData(records, joinRows, jsonData.LeftKey, jsonData.RightKey, jsonData.Fields)
		matched = res.Matched
		unmatched = res.Unmatched
		return res.Records, nil
	})
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, gin.H{"matched": matched, "unmatched": unmatched})
}

type uniqueIdData struct {
	Field    string `json:"field" binding:"required"`
	Strategy string `json:"strategy"`
}

// AddUniqueId 添加唯一标识列，strategy为sequence时用序号，默认uuid
func (pc *PrepController) AddUniqueId(c *gin.Context) {
	var jsonData uniqueIdData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	layer, err := pc.Mutation.Apply("添加唯一标识: "+jsonData.Field, func(records []geodata.Record) ([]geodata.Record, error) {
		return transforms.AddUniqueID(records, jsonData.Field, jsonData.Strategy), nil
	})
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, nil)
}

type templateData struct {
	Template    string                     `json:"template" binding:"required"`
	OutputField string                     `json:"outputField"`
	Options     transforms.TemplateOptions `json:"options"`
}

// ApplyTemplate 按占位符模板生成新列
func (pc *PrepController) ApplyTemplate(c *gin.Context) {
	var jsonData templateData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	if jsonData.OutputField == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少输出字段名"})
		return
	}
	layer, err := pc.Mutation.Apply("模板生成: "+jsonData.OutputField, func(records []geodata.Record) ([]geodata.Record, error) {
		return transforms.ApplyTemplate(records, jsonData.Template, jsonData.OutputField, jsonData.Options), nil
	})
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, nil)
}

// PreviewTemplate 模板预览，只读，不进历史
func (pc *PrepController) PreviewTemplate(c *gin.Context) {
	var jsonData templateData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	active := pc.Layers.ActiveLayer()
	if active == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrNoActiveLayer.Error()})
		return
	}
	records, _ := pc.Layers.RecordsOf(active.Dataset.ID)
	preview := transforms.PreviewTemplate(records, jsonData.Template, jsonData.Options)
	c.JSON(http.StatusOK, gin.H{"preview": preview})
}

type validateData struct {
	LayerID string                      `json:"layerId"`
	Rules   []transforms.ValidationRule `json:"rules" binding:"required"`
}

// ValidateData 按规则检查数据，只读，返回违规列表
func (pc *PrepController) ValidateData(c *gin.Context) {
	var jsonData validateData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	id, ok := pc.resolveLayerID(jsonData.LayerID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrNoActiveLayer.Error()})
		return
	}
	records, found := pc.Layers.RecordsOf(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "图层不存在"})
		return
	}
	violations := transforms.Validate(records, jsonData.Rules)
	c.JSON(http.StatusOK, gin.H{"violations": violations, "count": len(violations)})
}
