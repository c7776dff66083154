// views/helper.go
package views

import (
	"errors"
	"net/http"

	"github.com/GrainArc/GeoPrep/services"
	"github.com/gin-gonic/gin"
)

// respondMutationError 把服务层错误映射为HTTP状态码
func respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoActiveLayer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFilterStateInconsistent):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLayerRemoved), errors.Is(err, services.ErrLayerNotFound), errors.Is(err, services.ErrFieldNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// respondLayer 变更成功后的统一响应，带最新结构供前端刷新
func respondLayer(c *gin.Context, layer *services.Layer, extra gin.H) {
	body := gin.H{
		"layerId": layer.Dataset.ID,
		"name":    layer.Dataset.Name,
		"count":   len(layer.Dataset.Records),
		"schema":  layer.Schema,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
