package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/planor/portal-api/pkg/apperr"
	"github.com/planor/portal-api/pkg/model"
)

func (r *Router) listBuildings(c *gin.Context) {
	buildings, err := r.buildings.Query(c.Request.Context(), model.BuildingFilter{
		PropertyID: c.Query("propertyId"),
		ClientID:   c.Query("clientId"),
		Search:     c.Query("search"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": buildings})
}

func (r *Router) getBuilding(c *gin.Context) {
	building, err := r.buildings.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, building)
}

func (r *Router) createBuilding(c *gin.Context) {
	var b model.Building
	if err := c.BindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(b.Name) == "" {
		writeError(c, apperr.New(apperr.KindInvalidInput, "name is required"))
		return
	}
	created, err := r.buildings.Create(c.Request.Context(), b)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// updateBuilding replaces building metadata; the object map is only writable
// through pricelist ingestion, so the stored one is carried over.
func (r *Router) updateBuilding(c *gin.Context) {
	var body model.Building
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	building, err := r.buildings.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	building.Name = body.Name
	building.Address = body.Address
	building.PropertyID = body.PropertyID
	building.ClientID = body.ClientID
	building.Area = body.Area

	updated, err := r.buildings.Replace(c.Request.Context(), building)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (r *Router) deleteBuilding(c *gin.Context) {
	if err := r.buildings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) listProperties(c *gin.Context) {
	properties, err := r.properties.List(c.Request.Context(), c.Query("clientId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": properties})
}

func (r *Router) createProperty(c *gin.Context) {
	var p model.Property
	if err := c.BindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		writeError(c, apperr.New(apperr.KindInvalidInput, "name is required"))
		return
	}
	created, err := r.properties.Create(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (r *Router) updateProperty(c *gin.Context) {
	var p model.Property
	if err := c.BindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	p.ID = c.Param("id")
	updated, err := r.properties.Update(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (r *Router) deleteProperty(c *gin.Context) {
	if err := r.properties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) listClients(c *gin.Context) {
	clients, err := r.clients.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": clients})
}

func (r *Router) createClient(c *gin.Context) {
	var client model.Client
	if err := c.BindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(client.Name) == "" {
		writeError(c, apperr.New(apperr.KindInvalidInput, "name is required"))
		return
	}
	created, err := r.clients.Create(c.Request.Context(), client)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (r *Router) updateClient(c *gin.Context) {
	var client model.Client
	if err := c.BindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	client.ID = c.Param("id")
	updated, err := r.clients.Update(c.Request.Context(), client)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (r *Router) deleteClient(c *gin.Context) {
	if err := r.clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
