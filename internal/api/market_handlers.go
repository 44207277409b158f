package api

import (
	"fmt"
	"net/http"
	"strings"

	"borsa-dashboard-go/internal/catalog"
	"borsa-dashboard-go/internal/entitlement"
	"borsa-dashboard-go/internal/market"
	"github.com/gin-gonic/gin"
)

// instrumentsResponse is the dashboard table for one category.
type instrumentsResponse struct {
	Category    catalog.Category             `json:"category"`
	Instruments []entitlement.InstrumentView `json:"instruments"`
	Status      market.Status                `json:"status"`
}

func parseCategory(s string) (catalog.Category, error) {
	category, err := catalog.ParseCategory(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("%w: %q", market.ErrUnknownCategory, s)
	}
	return category, nil
}

func (s *Server) listInstruments(c *gin.Context) {
	category, err := parseCategory(c.DefaultQuery("category", string(catalog.Equity)))
	if err != nil {
		s.abort(c, err)
		return
	}

	rows, status, err := s.deps.Board.Instruments(category)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, instrumentsResponse{
		Category:    category,
		Instruments: entitlement.Present(s.viewer(c), rows),
		Status:      status,
	})
}

func (s *Server) getInstrument(c *gin.Context) {
	row, ok := s.deps.Board.Instrument(c.Param("symbol"))
	if !ok {
		s.abort(c, errNotFound)
		return
	}
	c.JSON(http.StatusOK, entitlement.Present(s.viewer(c), []market.MergedInstrument{row})[0])
}

func (s *Server) refreshInstruments(c *gin.Context) {
	category, err := parseCategory(c.DefaultQuery("category", string(catalog.Equity)))
	if err != nil {
		s.abort(c, err)
		return
	}
	if err := s.deps.Board.Refresh(c.Request.Context(), category); err != nil {
		// The failure is already recorded on the board status.
		_ = c.Error(err)
	}
	s.listInstruments(c)
}

// pricesRequest is the price proxy input.
type pricesRequest struct {
	Category string   `json:"category" form:"category"`
	Symbols  []string `json:"symbols" form:"symbols"`
}

func (s *Server) getPrices(c *gin.Context) {
	var req pricesRequest
	req.Category = c.Query("category")
	for _, v := range c.QueryArray("symbols") {
		req.Symbols = append(req.Symbols, strings.Split(v, ",")...)
	}
	s.prices(c, req)
}

func (s *Server) postPrices(c *gin.Context) {
	var req pricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}
	s.prices(c, req)
}

func (s *Server) prices(c *gin.Context, req pricesRequest) {
	category, err := parseCategory(req.Category)
	if err != nil {
		s.abort(c, err)
		return
	}
	resp, err := s.deps.Prices.Quotes(c.Request.Context(), category, req.Symbols)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// newsRequest is the news proxy input. Name and category default to the
// catalog entry of the symbol.
type newsRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (s *Server) news(c *gin.Context) {
	if d := entitlement.Decide(s.viewer(c), entitlement.News); !d.Allowed {
		s.deny(c, d)
		return
	}

	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abort(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	q := market.NewsQuery{Symbol: strings.ToUpper(strings.TrimSpace(req.Symbol)), Name: req.Name}
	if req.Category != "" {
		category, err := parseCategory(req.Category)
		if err != nil {
			s.abort(c, err)
			return
		}
		q.Category = category
	}
	if inst, ok := s.deps.Catalog.Lookup(q.Symbol); ok {
		if q.Name == "" {
			q.Name = inst.Name
		}
		if q.Category == "" {
			q.Category = inst.Category
		}
	}

	items, err := s.deps.News.News(c.Request.Context(), q)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) entitlements(c *gin.Context) {
	v := s.viewer(c)
	c.JSON(http.StatusOK, gin.H{
		"signed_in": v.SignedIn,
		"tier":      v.Tier,
		"features":  entitlement.DecideAll(v),
	})
}
