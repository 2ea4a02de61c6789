package appointment

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/baseline-api/internal/handler"
	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/service/appointment"
	"github.com/jwalitptl/baseline-api/pkg/event"
	"github.com/jwalitptl/baseline-api/pkg/httputil"
)

const resource = "appointment"

type Handler struct {
	service appointment.AppointmentService
}

func NewHandler(service appointment.AppointmentService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) RegisterRoutesWithEvents(r *gin.RouterGroup, eventTracker *event.EventTracker) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", eventTracker.TrackEvent(resource, event.ActionCreate), h.CreateAppointment)
		appointments.PUT("/:id", eventTracker.TrackEvent(resource, event.ActionUpdate), h.UpdateAppointment)
		appointments.DELETE("/:id", eventTracker.TrackEvent(resource, event.ActionDelete), h.DeleteAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var filters model.AppointmentFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithMessage(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	a, err := h.service.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"appointment": a})
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if eventCtx := event.FromContext(c); eventCtx != nil {
		eventCtx.ResourceID = a.ID
		eventCtx.NewData = a
		eventCtx.Additional = map[string]interface{}{"patientId": a.PatientID}
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, gin.H{
		"message":     "Appointment created successfully",
		"appointment": a,
	})
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := handler.BindJSON(c, &patch); err != nil {
		httputil.RespondWithMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, previous, err := h.service.UpdateAppointment(c.Request.Context(), c.Param("id"), patch)
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
		"message":     "Appointment updated successfully",
		"appointment": updated,
	})
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	removed, err := h.service.DeleteAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if eventCtx := event.FromContext(c); eventCtx != nil {
		eventCtx.ResourceID = removed.ID
		eventCtx.OldData = removed
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
