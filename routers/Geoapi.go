package routers

import (
	"github.com/GrainArc/GeoPrep/config"
	"github.com/GrainArc/GeoPrep/history"
	"github.com/GrainArc/GeoPrep/services"
	"github.com/GrainArc/GeoPrep/views"
	"github.com/gin-gonic/gin"
)

func PrepRouters(r *gin.Engine) {
	layers := services.NewLayerService()
	hist := history.NewManager(config.HistoryDepth, layers.CaptureState)
	mutation := services.NewMutationService(layers, hist)
	filter := services.NewFilterService(layers, hist)
	records := services.NewRecordService()
	records.Attach(layers)
	hub := views.NewEventHub()
	hub.Attach(layers)
	PrepController := views.NewPrepController(layers, mutation, filter, records)

	prepRouter := r.Group("/prep")
	{
		prepRouter.POST("/AddLayer", PrepController.AddLayer)
		prepRouter.POST("/AddTable", PrepController.AddTable)
		prepRouter.GET("/GetLayers", PrepController.GetLayers)
		prepRouter.GET("/SetActiveLayer", PrepController.SetActiveLayer)
		prepRouter.GET("/DelLayer", PrepController.DelLayer)
		prepRouter.GET("/OutLayer", PrepController.OutLayer)

		prepRouter.GET("/GetSchema", PrepController.GetSchema)
		prepRouter.POST("/UpdateFieldSelection", PrepController.UpdateFieldSelection)
		prepRouter.POST("/ApplyFieldSelection", PrepController.ApplyFieldSelection)
		prepRouter.GET("/SuggestFieldNames", PrepController.SuggestFieldNames)

		prepRouter.POST("/SplitColumn", PrepController.SplitColumn)
		prepRouter.POST("/CombineColumns", PrepController.CombineColumns)
		prepRouter.POST("/ReplaceText", PrepController.ReplaceText)
		prepRouter.POST("/ConvertField", PrepController.ConvertField)
		prepRouter.POST("/Deduplicate", PrepController.Deduplicate)
		prepRouter.POST("/JoinData", PrepController.JoinData)
		prepRouter.POST("/AddUniqueId", PrepController.AddUniqueId)
		prepRouter.POST("/ApplyTemplate", PrepController.ApplyTemplate)
		prepRouter.POST("/PreviewTemplate", PrepController.PreviewTemplate)
		prepRouter.POST("/ValidateData", PrepController.ValidateData)

		prepRouter.POST("/ApplyFilter", PrepController.ApplyFilter)
		prepRouter.GET("/RemoveFilter", PrepController.RemoveFilter)

		prepRouter.GET("/Undo", PrepController.Undo)
		prepRouter.GET("/Redo", PrepController.Redo)
		prepRouter.GET("/GetHistoryState", PrepController.GetHistoryState)
		prepRouter.GET("/GetPrepRecord", PrepController.GetPrepRecord)

		prepRouter.POST("/LayerStatistics", PrepController.LayerStatistics)
		prepRouter.GET("/Events", hub.ServeEvents)
	}
}
