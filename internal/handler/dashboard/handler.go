package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/pkg/httputil"
)

type StatsService interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

type Handler struct {
	stats StatsService
}

func NewHandler(stats StatsService) *Handler {
	return &Handler{stats: stats}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/stats", h.GetStats)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, stats)
}
