package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const exportBaseName = "news_search_results"

func (h *Handler) ExportArticles(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	writer, err := h.exportSvc.Writer(format)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	// Buffered so that a failed export can still return a JSON error.
	var buf bytes.Buffer
	rows, err := h.exportSvc.Export(c.Request.Context(), parseSearchQuery(c), writer.Format(), &buf)
	if err != nil {
		log.WithError(err).WithField("format", writer.Format()).Error("export failed")
		mapDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, exportBaseName, writer.Format()))
	c.Header("X-Export-Rows", fmt.Sprint(rows))
	c.Data(http.StatusOK, writer.ContentType(), buf.Bytes())
}
