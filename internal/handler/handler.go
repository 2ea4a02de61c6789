package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwalitptl/baseline-api/pkg/httputil"
)

// Handler serves the operational endpoints
type Handler struct {
	gatherer prometheus.Gatherer
}

// NewHandler creates a new handler instance
func NewHandler(gatherer prometheus.Gatherer) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{gatherer: gatherer}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": httputil.Timestamp(time.Now()),
	})
}

func (h *Handler) MetricsHandler() gin.HandlerFunc {
	metrics := promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		metrics.ServeHTTP(c.Writer, c.Request)
	}
}

func (h *Handler) NotFound(c *gin.Context) {
	httputil.RespondWithMessage(c, http.StatusNotFound, "Not found")
}

// BindJSON decodes the request body into obj. An empty body leaves obj
// untouched so presence checks can report the missing fields.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
