package views

import (
	"net/http"
	"net/url"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/GrainArc/GeoPrep/schema"
	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"
)

type addLayerData struct {
	Name    string                    `json:"name" binding:"required"`
	GeoJson geojson.FeatureCollection `json:"geojson"`
}

type addTableData struct {
	Name   string                   `json:"name" binding:"required"`
	Fields []string                 `json:"fields"`
	Rows   []map[string]interface{} `json:"rows"`
}

// AddLayer 导入GeoJSON图层并设为活动图层
func (pc *PrepController) AddLayer(c *gin.Context) {
	var jsonData addLayerData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	ds := geodata.FromFeatureCollection(jsonData.Name, &jsonData.GeoJson)
	layer := pc.Layers.AddLayer(ds, nil)
	respondLayer(c, layer, nil)
}

// AddTable 导入表格数据（CSV解析后的行），Fields保持表头顺序
func (pc *PrepController) AddTable(c *gin.Context) {
	var jsonData addTableData
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	ds := geodata.FromRows(jsonData.Name, jsonData.Rows, jsonData.Fields)
	layer := pc.Layers.AddLayer(ds, jsonData.Fields)
	respondLayer(c, layer, nil)
}

// GetLayers 图层列表
func (pc *PrepController) GetLayers(c *gin.Context) {
	c.JSON(http.StatusOK, pc.Layers.LayersInfo())
}

// SetActiveLayer 切换活动图层
func (pc *PrepController) SetActiveLayer(c *gin.Context) {
	LayerID := c.Query("LayerID")
	if !pc.Layers.SetActive(LayerID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "图层不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// DelLayer 移除图层
func (pc *PrepController) DelLayer(c *gin.Context) {
	LayerID := c.Query("LayerID")
	if !pc.Layers.RemoveLayer(LayerID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "图层不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// OutLayer 导出图层为GeoJSON。默认按字段勾选和输出名投影，
// Projected=0时导出原始字段
func (pc *PrepController) OutLayer(c *gin.Context) {
	LayerID := c.Query("LayerID")
	layer := pc.Layers.Layer(LayerID)
	if layer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "图层不存在"})
		return
	}
	records, _ := pc.Layers.RecordsOf(LayerID)
	if c.DefaultQuery("Projected", "1") != "0" {
		if sch := pc.Layers.SchemaOf(LayerID); sch != nil {
			records = schema.ApplyFieldSelection(records, sch)
		}
	}
	fc := geodata.ToFeatureCollection(records)
	fileName := url.QueryEscape(layer.Dataset.Name + ".geojson")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.JSON(http.StatusOK, fc)
}
