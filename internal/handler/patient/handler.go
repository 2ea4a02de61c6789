package patient

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/baseline-api/internal/handler"
	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/service/patient"
	"github.com/jwalitptl/baseline-api/pkg/event"
	"github.com/jwalitptl/baseline-api/pkg/httputil"
)

const resource = "patient"

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

func (h *Handler) RegisterRoutesWithEvents(r *gin.RouterGroup, eventTracker *event.EventTracker) {
	patients := r.Group("/patients")
	{
		patients.POST("", eventTracker.TrackEvent(resource, event.ActionCreate), h.CreatePatient)
		patients.PUT("/:id", eventTracker.TrackEvent(resource, event.ActionUpdate), h.UpdatePatient)
		patients.DELETE("/:id", eventTracker.TrackEvent(resource, event.ActionDelete), h.DeletePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	var filters model.PatientFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithMessage(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}

func (h *Handler) GetPatient(c *gin.Context) {
	p, err := h.service.GetPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"patient": p})
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if eventCtx := event.FromContext(c); eventCtx != nil {
		eventCtx.ResourceID = p.ID
		eventCtx.NewData = p
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, gin.H{
		"message": "Patient created successfully",
		"patient": p,
	})
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := handler.BindJSON(c, &patch); err != nil {
		httputil.RespondWithMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, previous, err := h.service.UpdatePatient(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if eventCtx := event.FromContext(c); eventCtx != nil {
		eventCtx.ResourceID = updated.ID
		eventCtx.OldData = previous
		eventCtx.NewData = updated
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"message": "Patient updated successfully",
		"patient": updated,
	})
}

func (h *Handler) DeletePatient(c *gin.Context) {
	removed, err := h.service.DeletePatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if eventCtx := event.FromContext(c); eventCtx != nil {
		eventCtx.ResourceID = removed.ID
		eventCtx.OldData = removed
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "Patient deleted successfully"})
}
