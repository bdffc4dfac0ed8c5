package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planor/portal-api/pkg/apperr"
	"github.com/planor/portal-api/pkg/model"
)

type ingestReq struct {
	BuildingID string `json:"buildingId"`
	FileURL    string `json:"fileUrl"`
}

func (r *Router) ingestPricelist(c *gin.Context) {
	var req ingestReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	result, err := r.ingest.Ingest(c.Request.Context(), req.BuildingID, req.FileURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (r *Router) listPricelist(c *gin.Context) {
	entries, err := r.pricelists.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

type updatePriceReq struct {
	Price *float64 `json:"price"`
}

func (r *Router) updatePrice(c *gin.Context) {
	var req updatePriceReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Price == nil || *req.Price < 0 {
		writeError(c, apperr.New(apperr.KindInvalidInput, "price must be a non-negative number"))
		return
	}
	entry, err := r.pricelists.UpdatePrice(c.Request.Context(), c.Param("id"), *req.Price)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (r *Router) maintenanceCost(c *gin.Context) {
	filter := model.BuildingFilter{
		PropertyID: c.Query("propertyId"),
		ClientID:   c.Query("clientId"),
		Search:     c.Query("search"),
	}
	breakdown, err := r.calculator.Calculate(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
