package models

import "gorm.io/datatypes"

// PrepRecord 数据整理操作记录，每次图层变更写一行
type PrepRecord struct {
	ID        int64  `gorm:"primary_key"`
	LayerID   string `gorm:"type:varchar(255);index"`
	LayerName string `gorm:"type:varchar(255)"`
	Username  string `gorm:"type:varchar(255)"`
	Type      string `gorm:"type:varchar(255)"`
	Date      string `gorm:"type:varchar(255)"`
	BZ        string `gorm:"type:varchar(255)"`
	Count     int
	Detail    datatypes.JSON `gorm:"type:json"`
}
