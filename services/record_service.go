// services/record_service.go
package services

import (
	"encoding/json"
	"log"

	"github.com/GrainArc/GeoPrep/config"
	"github.com/GrainArc/GeoPrep/models"
	"gorm.io/datatypes"
)

// RecordService 把图层事件落到操作记录表，数据库不可用时静默跳过
type RecordService struct{}

func NewRecordService() *RecordService {
	return &RecordService{}
}

// Attach 订阅图层事件流
func (s *RecordService) Attach(layers *LayerService) {
	layers.Subscribe(s.write)
}

func (s *RecordService) write(ev Event) {
	if models.DB == nil {
		return
	}
	detail, _ := json.Marshal(ev)
	rec := models.PrepRecord{
		LayerID:   ev.LayerID,
		LayerName: ev.LayerName,
		Username:  config.DeviceName,
		Type:      ev.Type,
		BZ:        ev.Label,
		Count:     ev.Count,
		Date:      ev.Date,
		Detail:    datatypes.JSON(detail),
	}
	if err := models.DB.Create(&rec).Error; err != nil {
		log.Printf("操作记录写入失败: %v", err)
	}
}

// List 查询操作记录，layerID为空查全部，按入库顺序倒排
func (s *RecordService) List(layerID string, limit int) ([]models.PrepRecord, error) {
	if models.DB == nil {
		return []models.PrepRecord{}, nil
	}
	var out []models.PrepRecord
	q := models.DB.Order("id desc").Limit(limit)
	if layerID != "" {
		q = q.Where("layer_id = ?", layerID)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
