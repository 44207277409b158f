package api

import (
	"net/http"

	"borsa-dashboard-go/internal/content"
	"borsa-dashboard-go/internal/entitlement"
	"github.com/gin-gonic/gin"
)

func featureOf(kind content.Kind) entitlement.Feature {
	if kind == content.Wishlist {
		return entitlement.Wishlist
	}
	return entitlement.Notifications
}

// contentRoutes registers list, contains and toggle for a collection.
func (s *Server) contentRoutes(g *gin.RouterGroup, store *content.Store) {
	gate := func(c *gin.Context) {
		if d := entitlement.Decide(s.viewer(c), featureOf(store.Kind())); !d.Allowed {
			s.deny(c, d)
			return
		}
		c.Next()
	}
	g.Use(gate)

	g.GET("", func(c *gin.Context) {
		symbols, err := store.List(c.Request.Context(), account(c).ID)
		if err != nil {
			s.abort(c, err)
			return
		}
		if symbols == nil {
			symbols = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"symbols": symbols})
	})

	g.GET("/:symbol", func(c *gin.Context) {
		ok, err := store.Contains(c.Request.Context(), account(c).ID, c.Param("symbol"))
		if err != nil {
			s.abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"symbol": c.Param("symbol"), "present": ok})
	})

	g.POST("/:symbol/toggle", func(c *gin.Context) {
		outcome, err := store.Toggle(c.Request.Context(), account(c).ID, c.Param("symbol"))
		if err != nil {
			s.abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"symbol": c.Param("symbol"), "outcome": outcome})
	})
}
