package api

import (
	"net/http"
	"strings"

	"borsa-dashboard-go/internal/i18n"
	"borsa-dashboard-go/internal/models"
	"github.com/gin-gonic/gin"
)

type tierRequest struct {
	Tier string `json:"tier" binding:"required"`
}

type redeemRequest struct {
	Code string `json:"code" binding:"required"`
}

func tierOf(s string) models.Tier {
	return models.Tier(strings.ToLower(strings.TrimSpace(s)))
}

func (s *Server) listMyRequests(c *gin.Context) {
	reqs, err := s.deps.Subscription.ListForUser(c.Request.Context(), account(c).ID)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

func (s *Server) submitRequest(c *gin.Context) {
	var req tierRequest
	if !s.bind(c, &req) {
		return
	}
	pr, err := s.deps.Subscription.Submit(c.Request.Context(), account(c).ID, tierOf(req.Tier))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, pr)
}

func (s *Server) redeem(c *gin.Context) {
	var req redeemRequest
	if !s.bind(c, &req) {
		return
	}
	acc, err := s.deps.Subscription.Redeem(c.Request.Context(), account(c).ID, req.Code)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"account": acc,
		"message": s.deps.Localizer.T(lang(c), i18n.KeyCodeRedeemed),
	})
}

func (s *Server) downgrade(c *gin.Context) {
	var req tierRequest
	if !s.bind(c, &req) {
		return
	}
	acc, err := s.deps.Subscription.Downgrade(c.Request.Context(), account(c).ID, tierOf(req.Tier))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (s *Server) listRequests(c *gin.Context) {
	var (
		reqs []models.PaymentRequest
		err  error
	)
	if c.DefaultQuery("status", "pending") == "all" {
		reqs, err = s.deps.Subscription.ListAll(c.Request.Context(), account(c).ID)
	} else {
		reqs, err = s.deps.Subscription.ListPending(c.Request.Context(), account(c).ID)
	}
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

func (s *Server) approveRequest(c *gin.Context) {
	pr, err := s.deps.Subscription.Approve(c.Request.Context(), account(c).ID, c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, pr)
}

func (s *Server) rejectRequest(c *gin.Context) {
	pr, err := s.deps.Subscription.Reject(c.Request.Context(), account(c).ID, c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, pr)
}
