package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/prevmaint/internal/config"
	"github.com/ukydev/prevmaint/internal/middleware"
)

const apiMessage = "Sistema de Mantenimiento Preventivo API"

// Handlers groups everything the router mounts.
type Handlers struct {
	Clients   *ClientHandler
	Equipment *EquipmentHandler
	Services  *ServiceHandler
	Store     Pinger
}

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// NewRouter installs the middleware chain and every route on engine.
func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery is outermost so it also covers the other middleware
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.NewCORS(cfg.CORS.Origins))
	if cfg.RateLimit.Requests > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		engine.Use(limiter.Handler())
		log.WithFields(log.Fields{
			"requests": cfg.RateLimit.Requests,
			"window":   cfg.RateLimit.Window,
		}).Info("Rate limiting enabled")
	}
	engine.Use(middleware.Timeout(cfg.Server.RequestTimeout))
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck(h.Store))

	api := engine.Group("/api")
	addRoutes(api, []route{
		{Method: http.MethodGet, Path: "/", Handler: root},

		{Method: http.MethodGet, Path: "/clientes", Handler: h.Clients.List},
		{Method: http.MethodGet, Path: "/clientes/:id", Handler: h.Clients.Get},
		{Method: http.MethodPost, Path: "/clientes", Handler: h.Clients.Create},
		{Method: http.MethodPut, Path: "/clientes/:id", Handler: h.Clients.Update},
		{Method: http.MethodDelete, Path: "/clientes/:id", Handler: h.Clients.Delete},

		{Method: http.MethodGet, Path: "/equipos", Handler: h.Equipment.List},
		{Method: http.MethodGet, Path: "/equipos/:id", Handler: h.Equipment.Get},
		{Method: http.MethodPost, Path: "/equipos", Handler: h.Equipment.Create},
		{Method: http.MethodPut, Path: "/equipos/:id", Handler: h.Equipment.Update},
		{Method: http.MethodDelete, Path: "/equipos/:id", Handler: h.Equipment.Delete},

		{Method: http.MethodGet, Path: "/servicios", Handler: h.Services.List},
		{Method: http.MethodGet, Path: "/servicios/proximos", Handler: h.Services.Upcoming},
		{Method: http.MethodPut, Path: "/servicios/:id/autorizar", Handler: h.Services.Authorize},

		{Method: http.MethodGet, Path: "/calendario/:anio/:mes", Handler: h.Services.Calendar},
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		g.Handle(r.Method, r.Path, r.Handler)
	}
}

func root(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: apiMessage})
}

func healthCheck(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store != nil {
			if err := store.Ping(c.Request.Context()); err != nil {
				log.WithError(err).Error("Health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
