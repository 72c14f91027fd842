package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "brewbuddy/internal/errors"
	"brewbuddy/internal/middleware"
	"brewbuddy/internal/service"
)

type BeanHandler struct {
	beanService *service.BeanService
}

type beanRequest struct {
	Name           string   `json:"name"`
	Roaster        string   `json:"roaster"`
	Origin         string   `json:"origin"`
	RoastLevel     string   `json:"roastLevel"`
	RoastDate      string   `json:"roastDate"`
	WeightGrams    float64  `json:"weightGrams"`
	RemainingGrams *float64 `json:"remainingGrams"`
}

func NewBeanHandler(beanService *service.BeanService) *BeanHandler {
	return &BeanHandler{beanService: beanService}
}

func (h *BeanHandler) Create(c *gin.Context) {
	input, ok := bindBeanInput(c)
	if !ok {
		return
	}

	bean, apiErr := h.beanService.Create(c.Request.Context(), middleware.UserID(c), input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bean": bean})
}

func (h *BeanHandler) List(c *gin.Context) {
	beans, apiErr := h.beanService.List(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"beans": beans})
}

func (h *BeanHandler) Get(c *gin.Context) {
	bean, apiErr := h.beanService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bean": bean})
}

func (h *BeanHandler) Update(c *gin.Context) {
	input, ok := bindBeanInput(c)
	if !ok {
		return
	}

	bean, apiErr := h.beanService.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bean": bean})
}

func (h *BeanHandler) Delete(c *gin.Context) {
	if apiErr := h.beanService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindBeanInput(c *gin.Context) (service.BeanInput, bool) {
	var req beanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return service.BeanInput{}, false
	}

	input := service.BeanInput{
		Name:           req.Name,
		Roaster:        req.Roaster,
		Origin:         req.Origin,
		RoastLevel:     req.RoastLevel,
		WeightGrams:    req.WeightGrams,
		RemainingGrams: req.RemainingGrams,
	}

	if req.RoastDate != "" {
		parsed, err := time.Parse("2006-01-02", req.RoastDate)
		if err != nil {
			writeError(c, apperrors.BadRequest("invalid_roast_date", "roast date must be YYYY-MM-DD"))
			return service.BeanInput{}, false
		}
		input.RoastDate = &parsed
	}

	return input, true
}
