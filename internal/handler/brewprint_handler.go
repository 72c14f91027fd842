package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brewbuddy/internal/middleware"
	"brewbuddy/internal/service"
)

type BrewprintHandler struct {
	brewprintService *service.BrewprintService
}

type brewprintRequest struct {
	Name          string  `json:"name"`
	Method        string  `json:"method"`
	CoffeeGrams   float64 `json:"coffeeGrams"`
	WaterGrams    float64 `json:"waterGrams"`
	WaterTempC    float64 `json:"waterTempC"`
	TargetSeconds int     `json:"targetSeconds"`
}

type resultRequest struct {
	Rating          int      `json:"rating"`
	Notes           string   `json:"notes"`
	TDSPercent      *float64 `json:"tdsPercent"`
	ExtractionYield *float64 `json:"extractionYield"`
	DurationSeconds int      `json:"durationSeconds"`
}

func NewBrewprintHandler(brewprintService *service.BrewprintService) *BrewprintHandler {
	return &BrewprintHandler{brewprintService: brewprintService}
}

func (h *BrewprintHandler) Create(c *gin.Context) {
	var req brewprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	bp, apiErr := h.brewprintService.Create(c.Request.Context(), middleware.UserID(c), brewprintInput(req))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"brewprint": bp})
}

func (h *BrewprintHandler) List(c *gin.Context) {
	brewprints, apiErr := h.brewprintService.List(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brewprints": brewprints})
}

func (h *BrewprintHandler) Get(c *gin.Context) {
	bp, apiErr := h.brewprintService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brewprint": bp})
}

func (h *BrewprintHandler) Update(c *gin.Context) {
	var req brewprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	bp, apiErr := h.brewprintService.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), brewprintInput(req))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brewprint": bp})
}

func (h *BrewprintHandler) Delete(c *gin.Context) {
	if apiErr := h.brewprintService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BrewprintHandler) Finalize(c *gin.Context) {
	bp, apiErr := h.brewprintService.Finalize(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brewprint": bp})
}

func (h *BrewprintHandler) Archive(c *gin.Context) {
	bp, apiErr := h.brewprintService.Archive(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brewprint": bp})
}

func (h *BrewprintHandler) Fork(c *gin.Context) {
	bp, apiErr := h.brewprintService.Fork(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"brewprint": bp})
}

func (h *BrewprintHandler) SubmitResult(c *gin.Context) {
	var req resultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.brewprintService.SubmitResult(c.Request.Context(), middleware.UserID(c), c.Param("id"), service.ResultInput{
		Rating:          req.Rating,
		Notes:           req.Notes,
		TDSPercent:      req.TDSPercent,
		ExtractionYield: req.ExtractionYield,
		DurationSeconds: req.DurationSeconds,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": result})
}

func (h *BrewprintHandler) ListResults(c *gin.Context) {
	results, apiErr := h.brewprintService.ListResults(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func brewprintInput(req brewprintRequest) service.BrewprintInput {
	return service.BrewprintInput{
		Name:          req.Name,
		Method:        req.Method,
		CoffeeGrams:   req.CoffeeGrams,
		WaterGrams:    req.WaterGrams,
		WaterTempC:    req.WaterTempC,
		TargetSeconds: req.TargetSeconds,
	}
}
