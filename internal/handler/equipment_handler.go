package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brewbuddy/internal/middleware"
	"brewbuddy/internal/service"
)

type EquipmentHandler struct {
	equipmentService *service.EquipmentService
}

type equipmentRequest struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Notes string `json:"notes"`
}

func NewEquipmentHandler(equipmentService *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

func (h *EquipmentHandler) Create(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	item, apiErr := h.equipmentService.Create(c.Request.Context(), middleware.UserID(c), service.EquipmentInput{
		Kind:  req.Kind,
		Name:  req.Name,
		Brand: req.Brand,
		Notes: req.Notes,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"equipment": item})
}

func (h *EquipmentHandler) List(c *gin.Context) {
	items, apiErr := h.equipmentService.List(c.Request.Context(), middleware.UserID(c), c.Query("kind"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"equipment": items})
}

func (h *EquipmentHandler) Get(c *gin.Context) {
	item, apiErr := h.equipmentService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"equipment": item})
}

func (h *EquipmentHandler) Update(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	item, apiErr := h.equipmentService.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), service.EquipmentInput{
		Kind:  req.Kind,
		Name:  req.Name,
		Brand: req.Brand,
		Notes: req.Notes,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"equipment": item})
}

func (h *EquipmentHandler) Delete(c *gin.Context) {
	if apiErr := h.equipmentService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
