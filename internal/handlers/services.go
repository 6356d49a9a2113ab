package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ServiceHandler handles scheduled service and calendar requests
type ServiceHandler struct {
	service ScheduleService
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(service ScheduleService) *ServiceHandler {
	return &ServiceHandler{service: service}
}

// List handles GET /api/servicios
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(services))
}

// Upcoming handles GET /api/servicios/proximos
func (h *ServiceHandler) Upcoming(c *gin.Context) {
	services, err := h.service.UpcomingServices(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(services))
}

// Authorize handles PUT /api/servicios/:id/autorizar?autorizado=bool.
// A missing autorizado query means true.
func (h *ServiceHandler) Authorize(c *gin.Context) {
	authorized, err := strconv.ParseBool(c.DefaultQuery("autorizado", "true"))
	if err != nil {
		abortBadRequest(c, err, "autorizado debe ser true o false")
		return
	}
	result, err := h.service.SetAuthorized(c.Request.Context(), c.Param("id"), authorized)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Calendar handles GET /api/calendario/:anio/:mes
func (h *ServiceHandler) Calendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("anio"))
	if err != nil {
		abortBadRequest(c, err, "anio debe ser un numero entero")
		return
	}
	month, err := strconv.Atoi(c.Param("mes"))
	if err != nil {
		abortBadRequest(c, err, "mes debe ser un numero entero")
		return
	}
	services, err := h.service.CalendarMonth(c.Request.Context(), year, month)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(services))
}
