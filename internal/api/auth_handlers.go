package api

import (
	"fmt"
	"net/http"

	"borsa-dashboard-go/internal/auth"
	"borsa-dashboard-go/internal/entitlement"
	"borsa-dashboard-go/internal/i18n"
	"borsa-dashboard-go/internal/models"
	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Username string `json:"username" binding:"required"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type usernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type changePasswordRequest struct {
	Current string `json:"current" binding:"required"`
	New     string `json:"new" binding:"required"`
}

// bind decodes the JSON body into v and answers 400 on failure.
func (s *Server) bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.abort(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return false
	}
	return true
}

func (s *Server) signUp(c *gin.Context) {
	var req signUpRequest
	if !s.bind(c, &req) {
		return
	}
	acc, err := s.deps.Auth.SignUp(c.Request.Context(), auth.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Username: req.Username,
	})
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, acc)
}

func (s *Server) signIn(c *gin.Context) {
	var req signInRequest
	if !s.bind(c, &req) {
		return
	}
	res, err := s.deps.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) signOut(c *gin.Context) {
	if err := s.deps.Auth.SignOut(c.Request.Context(), c.GetString(ctxToken)); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) usernameAvailable(c *gin.Context) {
	ok, err := s.deps.Auth.UsernameAvailable(c.Request.Context(), c.Query("username"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": ok})
}

func (s *Server) requestPasswordReset(c *gin.Context) {
	var req resetRequest
	if !s.bind(c, &req) {
		return
	}
	if err := s.deps.Auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": s.deps.Localizer.T(lang(c), i18n.KeyResetSent)})
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !s.bind(c, &req) {
		return
	}
	if err := s.deps.Auth.ResetPassword(c.Request.Context(), req.Email, req.Code, req.Password); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// meResponse is the signed-in account with its resolved entitlements.
type meResponse struct {
	Account       *models.Account        `json:"account"`
	EffectiveTier string                 `json:"effective_tier"`
	Features      []entitlement.Decision `json:"features"`
}

func (s *Server) me(c *gin.Context) {
	acc := account(c)
	v := s.viewer(c)
	c.JSON(http.StatusOK, meResponse{
		Account:       acc,
		EffectiveTier: string(v.Tier),
		Features:      entitlement.DecideAll(v),
	})
}

func (s *Server) updateUsername(c *gin.Context) {
	var req usernameRequest
	if !s.bind(c, &req) {
		return
	}
	acc, err := s.deps.Auth.UpdateUsername(c.Request.Context(), account(c).ID, req.Username)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (s *Server) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if !s.bind(c, &req) {
		return
	}
	if err := s.deps.Auth.ChangePassword(c.Request.Context(), account(c).ID, req.Current, req.New); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
