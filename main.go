package main

import (
	"log"

	"github.com/GrainArc/GeoPrep/config"
	"github.com/GrainArc/GeoPrep/models"
	"github.com/GrainArc/GeoPrep/routers"
	"github.com/gin-gonic/gin"
)

func main() {
	// 操作记录库坏了不影响整理功能，降级继续跑
	if err := models.InitDB(); err != nil {
		log.Printf("操作记录数据库不可用: %v", err)
	}
	r := gin.Default()
	routers.PrepRouters(r)
	if err := r.Run(config.MainRouter); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}
