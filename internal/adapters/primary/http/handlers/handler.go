package handlers

import (
	"news-sentiment-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	datasetSvc  *services.DatasetService
	searchSvc   *services.SearchService
	insightsSvc *services.InsightsService
	exportSvc   *services.ExportService
}

func New(
	datasetSvc *services.DatasetService,
	searchSvc *services.SearchService,
	insightsSvc *services.InsightsService,
	exportSvc *services.ExportService,
) *Handler {
	return &Handler{
		datasetSvc:  datasetSvc,
		searchSvc:   searchSvc,
		insightsSvc: insightsSvc,
		exportSvc:   exportSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Articles
	r.GET("/articles", h.SearchArticles)
	r.GET("/articles/:id", h.GetArticle)

	// Insights
	r.GET("/trend", h.GetAnnualTrend)
	r.GET("/summary", h.GetYearlySummary)
	r.GET("/options", h.GetFilterOptions)

	// Export
	r.GET("/export", h.ExportArticles)

	// Dataset
	r.GET("/dataset", h.GetDatasetInfo)
	r.POST("/dataset/reload", h.ReloadDataset)
}
