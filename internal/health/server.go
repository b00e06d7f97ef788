package health

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the liveness endpoints used by uptime monitoring. They
// consume nothing from the core.
func NewRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "🤖 Telegram Bot is Running!")
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "✅ Bot is healthy!")
	})

	return router
}

// Start serves the router in the background.
func Start(port int) {
	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Printf("[info] health server listening on %s", addr)
		if err := NewRouter().Run(addr); err != nil {
			log.Printf("[warn] health server: %v", err)
		}
	}()
}
