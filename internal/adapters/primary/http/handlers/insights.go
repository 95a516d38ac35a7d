package handlers

import (
	"net/http"

	"news-sentiment-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) GetAnnualTrend(c *gin.Context) {
	points, err := h.insightsSvc.AnnualTrend(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("annual trend failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TrendResponse{Items: points})
}

func (h *Handler) GetYearlySummary(c *gin.Context) {
	summary, err := h.insightsSvc.YearlySummary(c.Request.Context(), c.Query("year"))
	if err != nil {
		log.WithError(err).Error("yearly summary failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetFilterOptions(c *gin.Context) {
	opts, err := h.insightsSvc.Options(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, opts)
}
