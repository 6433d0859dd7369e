package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/avolkov/huddle/internal/adapters/signal"
	"github.com/avolkov/huddle/internal/app"
	"github.com/avolkov/huddle/internal/config"
	"github.com/avolkov/huddle/internal/ice"
)

// SetupRouter wires the HTTP surface: the websocket signaling endpoint,
// the static browser client, and the small read-only API.
func SetupRouter(cfg *config.Config, hub *app.Hub) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Signaling server is healthy.")
	})

	iceServers := ice.Servers(cfg.StunURLs)
	api := r.Group("/api")
	api.GET("/ice", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": iceServers})
	})
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, hub.Rooms())
	})

	ctl := signal.NewController(hub, cfg)
	r.GET("/ws", ctl.HandleWS)

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}
