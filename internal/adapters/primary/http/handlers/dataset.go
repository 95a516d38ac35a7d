package handlers

import (
	"net/http"

	"news-sentiment-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) GetDatasetInfo(c *gin.Context) {
	info, err := h.datasetSvc.Info()
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDatasetInfoResponse(info))
}

// ReloadDataset rereads the source. On failure the previous snapshot keeps
// serving.
func (h *Handler) ReloadDataset(c *gin.Context) {
	if err := h.datasetSvc.Reload(c.Request.Context()); err != nil {
		log.WithError(err).Error("reload dataset failed")
		mapDomainError(c, err)
		return
	}

	info, err := h.datasetSvc.Info()
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDatasetInfoResponse(info))
}
