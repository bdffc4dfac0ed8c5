// Package http wires the Gin router and HTTP handlers for the portal API.
package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/planor/portal-api/internal/business/maintenance"
	"github.com/planor/portal-api/internal/business/pricelist"
	"github.com/planor/portal-api/internal/repository"
	"github.com/planor/portal-api/pkg/apperr"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Router wires HTTP handlers.
type Router struct {
	buildings  *repository.BuildingRepository
	pricelists *repository.PricelistRepository
	properties *repository.PropertyRepository
	clients    *repository.ClientRepository
	ingest     *pricelist.Service
	calculator *maintenance.Calculator
	origins    string
}

func NewRouter(
	buildings *repository.BuildingRepository,
	pricelists *repository.PricelistRepository,
	properties *repository.PropertyRepository,
	clients *repository.ClientRepository,
	ingestSvc *pricelist.Service,
	calculator *maintenance.Calculator,
	allowedOrigins string,
) *gin.Engine {
	r := &Router{
		buildings:  buildings,
		pricelists: pricelists,
		properties: properties,
		clients:    clients,
		ingest:     ingestSvc,
		calculator: calculator,
		origins:    allowedOrigins,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log.Logger), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/pricelist", r.ingestPricelist)
		api.GET("/pricelist", r.listPricelist)
		api.PUT("/pricelist/:id", r.updatePrice)
		api.GET("/maintenance-cost", r.maintenanceCost)

		api.GET("/buildings", r.listBuildings)
		api.GET("/buildings/:id", r.getBuilding)
		api.POST("/buildings", r.createBuilding)
		api.PUT("/buildings/:id", r.updateBuilding)
		api.DELETE("/buildings/:id", r.deleteBuilding)

		api.GET("/properties", r.listProperties)
		api.POST("/properties", r.createProperty)
		api.PUT("/properties/:id", r.updateProperty)
		api.DELETE("/properties/:id", r.deleteProperty)

		api.GET("/clients", r.listClients)
		api.POST("/clients", r.createClient)
		api.PUT("/clients/:id", r.updateClient)
		api.DELETE("/clients/:id", r.deleteClient)
	}

	return router
}

// requestLogger tags each request with an id and logs method, path, status,
// and duration once the handler chain finishes.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		ctx := logger.With().Str("request_id", requestID).Logger().WithContext(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)

		c.Next()

		logger.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

// writeError maps an error to its status code and a JSON error body.
func writeError(c *gin.Context, err error) {
	code := apperr.StatusCode(err)
	if code >= http.StatusInternalServerError {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
