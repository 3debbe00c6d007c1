// Package handlers exposes the demo binary's debug HTTP surface.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chat-client/internal/chat"
	"chat-client/internal/telemetry"
)

// RegisterDebugRoutes wires the health, metrics and state endpoints.
func RegisterDebugRoutes(router *gin.Engine, client *chat.Client, emitter *telemetry.AuditEmitter, enabled bool) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "live": client.IsLive()})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !enabled {
		return
	}

	router.GET("/debug/state", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"live":          client.IsLive(),
			"open_peer":     client.OpenPeer(),
			"messages":      len(client.Messages()),
			"conversations": client.Conversations(),
			"online":        client.OnlineUsers(),
			"typing":        client.TypingUsers(),
		})
	})

	router.GET("/debug/audit-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit emitter not configured"})
			return
		}
		userID := client.Session().UserID
		emitter.Emit(c.Request.Context(), "INFO", "audit test", &userID)
		c.JSON(http.StatusOK, gin.H{"status": "ok", "request_id": requestIDFromContext(c)})
	})
}
