package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukydev/prevmaint/internal/maintenance"
	"github.com/ukydev/prevmaint/internal/models"
)

const msgInvalidEquipment = "Datos de equipo invalidos"

// EquipmentHandler handles equipment requests
type EquipmentHandler struct {
	service EquipmentService
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(service EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

// List handles GET /api/equipos
func (h *EquipmentHandler) List(c *gin.Context) {
	equipment, err := h.service.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(equipment))
}

// Get handles GET /api/equipos/:id
func (h *EquipmentHandler) Get(c *gin.Context) {
	equipment, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// Create handles POST /api/equipos. The schedule is generated before answering.
func (h *EquipmentHandler) Create(c *gin.Context) {
	var req models.EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, msgInvalidEquipment)
		return
	}
	equipment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// Update handles PUT /api/equipos/:id
func (h *EquipmentHandler) Update(c *gin.Context) {
	var req models.EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, msgInvalidEquipment)
		return
	}
	equipment, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// Delete handles DELETE /api/equipos/:id
func (h *EquipmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: maintenance.MsgEquipmentDeleted})
}
