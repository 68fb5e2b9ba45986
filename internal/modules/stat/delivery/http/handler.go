package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statService "newsagency.com/newsroom/internal/modules/stat/service"
	visit "newsagency.com/newsroom/internal/modules/visit/service"
	"newsagency.com/newsroom/pkg/response"
)

type StatHandler struct {
	statService  statService.StatService
	visitService visit.VisitService
}

func NewStatHandler(statService statService.StatService, visitService visit.VisitService) *StatHandler {
	return &StatHandler{
		statService:  statService,
		visitService: visitService,
	}
}

// Index renders the home page and counts the visit against the session.
func (h *StatHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.statService.GetHomeStats(ctx)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	sessionID, err := response.GetSessionID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	visits, err := h.visitService.RegisterVisit(ctx, sessionID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Render(c, http.StatusOK, "index.html", gin.H{
		"num_redactors":  stats.NumRedactors,
		"num_newspapers": stats.NumNewspapers,
		"num_topics":     stats.NumTopics,
		"num_visits":     visits,
	})
}
