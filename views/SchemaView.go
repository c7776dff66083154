package views

import (
	"net/http"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/GrainArc/GeoPrep/schema"
	"github.com/GrainArc/GeoPrep/services"
	"github.com/gin-gonic/gin"
)

type fieldSelectionData struct {
	LayerID    string `json:"layerId"`
	Field      string `json:"field" binding:"required"`
	Selected   *bool  `json:"selected"`
	OutputName string `json:"outputName"`
}

// resolveLayerID 请求没带图层ID时用活动图层
func (pc *PrepController) resolveLayerID(id string) (string, bool) {
	if id != "" {
		return id, true
	}
	active := pc.Layers.ActiveLayer()
	if active == nil {
		return "", false
	}
	return active.Dataset.ID, true
}

// GetSchema 查询图层结构，LayerID为空时取活动图层
func (pc *PrepController) GetSchema(c *gin.Context) {
	id, ok := pc.resolveLayerID(c.Query("LayerID"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrNoActiveLayer.Error()})
		return
	}
	sch := pc.Layers.SchemaOf(id)
	if sch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "图层不存在"})
		return
	}
	c.JSON(http.StatusOK, sch)
}

// UpdateFieldSelection 更新字段勾选状态和输出名，不动数据
func (pc *PrepController) UpdateFieldSelection(c *gin.Context) {
	var jsonData fieldSelectionData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	id, ok := pc.resolveLayerID(jsonData.LayerID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrNoActiveLayer.Error()})
		return
	}
	selected := true
	if jsonData.Selected != nil {
		selected = *jsonData.Selected
	}
	if err := pc.Layers.UpdateFieldSelection(id, jsonData.Field, selected, jsonData.OutputName); err != nil {
		respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, pc.Layers.SchemaOf(id))
}

// ApplyFieldSelection 按勾选和输出名重写数据，未勾选的字段被丢弃。
// 这是修改操作，会进历史
func (pc *PrepController) ApplyFieldSelection(c *gin.Context) {
	layer, err := pc.Mutation.Apply("应用字段设置", func(records []geodata.Record) ([]geodata.Record, error) {
		active := pc.Layers.ActiveLayer()
		if active == nil {
			return nil, services.ErrLayerRemoved
		}
		sch := pc.Layers.SchemaOf(active.Dataset.ID)
		return schema.ApplyFieldSelection(records, sch), nil
	})
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, nil)
}

// SuggestFieldNames 为中文字段名生成拼音首字母输出名建议
func (pc *PrepController) SuggestFieldNames(c *gin.Context) {
	id, ok := pc.resolveLayerID(c.Query("LayerID"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrNoActiveLayer.Error()})
		return
	}
	sch := pc.Layers.SchemaOf(id)
	if sch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "图层不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": schema.SuggestOutputNames(sch)})
}
