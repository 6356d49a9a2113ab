package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukydev/prevmaint/internal/maintenance"
	"github.com/ukydev/prevmaint/internal/models"
)

// ClientHandler handles client requests
type ClientHandler struct {
	service ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(service ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List handles GET /api/clientes
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(clients))
}

// Get handles GET /api/clientes/:id
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Create handles POST /api/clientes
func (h *ClientHandler) Create(c *gin.Context) {
	var req models.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Datos de cliente invalidos")
		return
	}
	client, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Update handles PUT /api/clientes/:id
func (h *ClientHandler) Update(c *gin.Context) {
	var req models.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Datos de cliente invalidos")
		return
	}
	client, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Delete handles DELETE /api/clientes/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: maintenance.MsgClientDeleted})
}
