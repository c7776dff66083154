package views

import (
	"net/http"

	"github.com/GrainArc/GeoPrep/transforms"
	"github.com/gin-gonic/gin"
)

// ApplyFilter 对活动图层应用过滤。重复调用时从过滤前的底数重算，
// 条件不叠加
func (pc *PrepController) ApplyFilter(c *gin.Context) {
	var jsonData transforms.Filter
	if err := c.ShouldBindJSON(&jsonData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数解析失败: " + err.Error()})
		return
	}
	layer, matched, err := pc.Filter.ApplyFilter(jsonData)
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, gin.H{"matched": matched})
}

// RemoveFilter 取消过滤，恢复完整数据
func (pc *PrepController) RemoveFilter(c *gin.Context) {
	layer, err := pc.Filter.RemoveFilter()
	if err != nil {
		respondMutationError(c, err)
		return
	}
	respondLayer(c, layer, nil)
}
