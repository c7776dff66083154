package views

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/GrainArc/GeoPrep/services"
	"github.com/GrainArc/GeoPrep/transforms"
	"github.com/gin-gonic/gin"
)

// 统计请求参数
type StatsRequest struct {
	LayerID    string                  `json:"layerId"`                       // 图层ID，空取活动图层
	StatField  string                  `json:"stat_field" binding:"required"` // 要统计的字段
	StatTypes  []string                `json:"stat_types" binding:"required"` // 统计类型：count, min, max, sum, avg, stddev
	GroupBy    []string                `json:"group_by"`                      // 分组字段
	Conditions []transforms.FilterRule `json:"conditions"`                    // 查询条件
}

// 统计结果
type StatsResult struct {
	GroupValues map[string]interface{} `json:"group_values,omitempty"` // 分组字段值
	Count       *int64                 `json:"count,omitempty"`
	Min         *float64               `json:"min,omitempty"`
	Max         *float64               `json:"max,omitempty"`
	Sum         *float64               `json:"sum,omitempty"`
	Avg         *float64               `json:"avg,omitempty"`
	Stddev      *float64               `json:"stddev,omitempty"`
}

// 统计响应
type StatsResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    []StatsResult `json:"data"`
}

// 字段统计，统计模式包括：计数、最小值、最大值、和、平均值、标准差，并支持按照其他字段值进行分组
func (pc *PrepController) LayerStatistics(c *gin.Context) {
	// 解析请求参数
	var req StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, StatsResponse{
			Success: false,
			Message: fmt.Sprintf("参数解析失败: %v", err),
		})
		return
	}

	// 验证统计类型
	validStatTypes := map[string]bool{
		"count": true, "min": true, "max": true,
		"sum": true, "avg": true, "stddev": true,
	}
	for _, statType := range req.StatTypes {
		if !validStatTypes[statType] {
			c.JSON(http.StatusBadRequest, StatsResponse{
				Success: false,
				Message: fmt.Sprintf("不支持的统计类型: %s", statType),
			})
			return
		}
	}

	id, ok := pc.resolveLayerID(req.LayerID)
	if !ok {
		c.JSON(http.StatusBadRequest, StatsResponse{
			Success: false,
			Message: services.ErrNoActiveLayer.Error(),
		})
		return
	}
	records, found := pc.Layers.RecordsOf(id)
	if !found {
		c.JSON(http.StatusNotFound, StatsResponse{
			Success: false,
			Message: "图层不存在",
		})
		return
	}

	// 应用查询条件
	if len(req.Conditions) > 0 {
		records = transforms.ApplyFilters(records, req.Conditions, "and")
	}

	// 分组并计算
	statsResults := groupStats(records, req)

	c.JSON(http.StatusOK, StatsResponse{
		Success: true,
		Message: "统计成功",
		Data:    statsResults,
	})
}

// groupStats 按分组字段汇总，组按首次出现顺序输出，无分组时整层算一组
func groupStats(records []geodata.Record, req StatsRequest) []StatsResult {
	groups := make(map[string][]geodata.Record)
	var order []string
	for _, rec := range records {
		key := groupKey(rec, req.GroupBy)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}

	out := make([]StatsResult, 0, len(order))
	for _, key := range order {
		group := groups[key]
		result := StatsResult{}
		if len(req.GroupBy) > 0 && group[0].Props != nil {
			result.GroupValues = make(map[string]interface{})
			for _, g := range req.GroupBy {
				result.GroupValues[g] = group[0].Props.Value(g).Interface()
			}
		}
		applyStats(&result, group, req)
		out = append(out, result)
	}
	return out
}

func groupKey(rec geodata.Record, groupBy []string) string {
	if len(groupBy) == 0 {
		return ""
	}
	parts := make([]string, 0, len(groupBy))
	for _, g := range groupBy {
		if rec.Props == nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, rec.Props.Value(g).Text())
	}
	return strings.Join(parts, "\x1f")
}

// applyStats 计算一组的统计值。count数非空值，其余只看能转成数值的
func applyStats(result *StatsResult, group []geodata.Record, req StatsRequest) {
	nonNull := 0
	values := make([]float64, 0, len(group))
	for _, rec := range group {
		if rec.Props == nil {
			continue
		}
		v := rec.Props.Value(req.StatField)
		if v.IsNull() {
			continue
		}
		nonNull++
		if f, ok := v.Float64(); ok {
			values = append(values, f)
		}
	}

	for _, statType := range req.StatTypes {
		switch statType {
		case "count":
			n := int64(nonNull)
			result.Count = &n
		case "min":
			if len(values) > 0 {
				mn := values[0]
				for _, f := range values[1:] {
					if f < mn {
						mn = f
					}
				}
				result.Min = &mn
			}
		case "max":
			if len(values) > 0 {
				mx := values[0]
				for _, f := range values[1:] {
					if f > mx {
						mx = f
					}
				}
				result.Max = &mx
			}
		case "sum":
			if len(values) > 0 {
				var sum float64
				for _, f := range values {
					sum += f
				}
				result.Sum = &sum
			}
		case "avg":
			if len(values) > 0 {
				var sum float64
				for _, f := range values {
					sum += f
				}
				avg := sum / float64(len(values))
				result.Avg = &avg
			}
		case "stddev":
			// 样本标准差，少于两个值时无意义
			if len(values) > 1 {
				var sum float64
				for _, f := range values {
					sum += f
				}
				mean := sum / float64(len(values))
				var ss float64
				for _, f := range values {
					d := f - mean
					ss += d * d
				}
				sd := math.Sqrt(ss / float64(len(values)-1))
				result.Stddev = &sd
			}
		}
	}
}
