package views

import (
	"github.com/GrainArc/GeoPrep/services"
)

// PrepController 数据整理接口控制器
type PrepController struct {
	Layers   *services.LayerService
	Mutation *services.MutationService
	Filter   *services.FilterService
	Records  *services.RecordService
}

func NewPrepController(layers *services.LayerService, mutation *services.MutationService, filter *services.FilterService, records *services.RecordService) *PrepController {
	return &PrepController{
		Layers:   layers,
		Mutation: mutation,
		Filter:   filter,
		Records:  records,
	}
}
