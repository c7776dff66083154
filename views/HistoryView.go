package views

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Undo 撤销最近一次操作。没有可撤销的历史时返回提示，不是错误
func (pc *PrepController) Undo(c *gin.Context) {
	entry, err := pc.Mutation.Undo()
	if err != nil {
		respondMutationError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusOK, gin.H{"message": "没有可撤销的操作", "state": pc.Mutation.History.State()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"layerId": entry.LayerID,
		"label":   entry.Label,
		"count":   len(entry.Snapshot),
		"state":   pc.Mutation.History.State(),
	})
}

// Redo 重做最近撤销的操作
func (pc *PrepController) Redo(c *gin.Context) {
	entry, err := pc.Mutation.Redo()
	if err != nil {
		respondMutationError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusOK, gin.H{"message": "没有可重做的操作", "state": pc.Mutation.History.State()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"layerId": entry.LayerID,
		"label":   entry.Label,
		"count":   len(entry.Snapshot),
		"state":   pc.Mutation.History.State(),
	})
}

// GetHistoryState 撤销/重做按钮的可用状态
func (pc *PrepController) GetHistoryState(c *gin.Context) {
	c.JSON(http.StatusOK, pc.Mutation.History.State())
}

// GetPrepRecord 查询操作记录，LayerID为空查全部，Limit默认100
func (pc *PrepController) GetPrepRecord(c *gin.Context) {
	LayerID := c.Query("LayerID")
	limit := 100
	if v := c.Query("Limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	records, err := pc.Records.List(LayerID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
