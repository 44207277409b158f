package api

import (
	"net/http"

	"borsa-dashboard-go/internal/autotrader"
	"github.com/gin-gonic/gin"
)

const recentTrades = 20

func (s *Server) traderOverview(c *gin.Context) {
	ov, err := s.deps.Trader.Overview(c.Request.Context(), account(c), recentTrades)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (s *Server) updateTraderSettings(c *gin.Context) {
	var req autotrader.SettingsInput
	if !s.bind(c, &req) {
		return
	}
	settings, err := s.deps.Trader.UpdateSettings(c.Request.Context(), account(c), req)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) startTrader(c *gin.Context) {
	s.toggleTrader(c, true)
}

func (s *Server) stopTrader(c *gin.Context) {
	s.toggleTrader(c, false)
}

func (s *Server) toggleTrader(c *gin.Context, active bool) {
	settings, err := s.deps.Trader.SetActive(c.Request.Context(), account(c), active)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
