package handlers

import (
	"net/http"
	"strconv"

	"news-sentiment-service/internal/adapters/primary/http/dto"
	"news-sentiment-service/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SearchArticles(c *gin.Context) {
	q := parseSearchQuery(c)

	res, err := h.searchSvc.Search(c.Request.Context(), q)
	if err != nil {
		log.WithError(err).Error("search articles failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSearchArticlesResponse(res))
}

func (h *Handler) GetArticle(c *gin.Context) {
	detail, err := h.searchSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArticleDetailResponse(detail))
}

// parseSearchQuery reads the filter parameters. Values that do not parse
// fall back to their defaults instead of failing the request.
func parseSearchQuery(c *gin.Context) services.SearchQuery {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultSearchLimit)))
	if err != nil {
		limit = services.DefaultSearchLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	sentMin, sentMax := services.ParseSentimentBounds(c.Query("sent_min"), c.Query("sent_max"))

	return services.SearchQuery{
		Year:    c.Query("year"),
		Symbol:  c.Query("symbol"),
		SentMin: sentMin,
		SentMax: sentMax,
		Keyword: c.Query("keyword"),
		NewsID:  c.Query("news_id"),
		Limit:   limit,
		Offset:  offset,
	}
}
