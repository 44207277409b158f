package api

import (
	"errors"
	"net/http"

	"borsa-dashboard-go/internal/auth"
	"borsa-dashboard-go/internal/autotrader"
	"borsa-dashboard-go/internal/content"
	"borsa-dashboard-go/internal/entitlement"
	"borsa-dashboard-go/internal/i18n"
	"borsa-dashboard-go/internal/market"
	"borsa-dashboard-go/internal/subscription"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errForbidden      = errors.New("forbidden")
	errInvalidRequest = errors.New("invalid request")
	errNotFound       = errors.New("not found")
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorMapping struct {
	target error
	status int
	key    string
}

// Order matters: ErrAlreadyResolved wraps ErrNoPendingRequest.
var errorMappings = []errorMapping{
	{errInvalidRequest, http.StatusBadRequest, i18n.KeyInvalidRequest},
	{errForbidden, http.StatusForbidden, i18n.KeyForbidden},
	{errNotFound, http.StatusNotFound, i18n.KeyNotFound},

	{auth.ErrUnauthenticated, http.StatusUnauthorized, i18n.KeyUnauthenticated},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, i18n.KeyInvalidCredentials},
	{auth.ErrInvalidEmail, http.StatusBadRequest, i18n.KeyInvalidEmail},
	{auth.ErrWeakPassword, http.StatusBadRequest, i18n.KeyWeakPassword},
	{auth.ErrInvalidUsername, http.StatusBadRequest, i18n.KeyInvalidUsername},
	{auth.ErrUsernameTaken, http.StatusConflict, i18n.KeyUsernameTaken},
	{auth.ErrEmailTaken, http.StatusConflict, i18n.KeyEmailTaken},
	{auth.ErrInvalidResetCode, http.StatusBadRequest, i18n.KeyInvalidResetCode},
	{auth.ErrAccountNotFound, http.StatusNotFound, i18n.KeyNotFound},

	{subscription.ErrForbidden, http.StatusForbidden, i18n.KeyForbidden},
	{subscription.ErrAccountNotFound, http.StatusNotFound, i18n.KeyNotFound},
	{subscription.ErrInvalidTier, http.StatusBadRequest, i18n.KeyInvalidTier},
	{subscription.ErrSameTier, http.StatusConflict, i18n.KeySameTier},
	{subscription.ErrRequestPending, http.StatusConflict, i18n.KeyRequestPending},
	{subscription.ErrAlreadyResolved, http.StatusConflict, i18n.KeyAlreadyResolved},
	{subscription.ErrNoPendingRequest, http.StatusNotFound, i18n.KeyNoPendingRequest},
	{subscription.ErrInvalidCode, http.StatusBadRequest, i18n.KeyInvalidCode},
	{subscription.ErrCodeUsed, http.StatusConflict, i18n.KeyCodeUsed},
	{subscription.ErrRedeemFailed, http.StatusInternalServerError, i18n.KeyRedeemFailed},
	{subscription.ErrInvalidDowngrade, http.StatusBadRequest, i18n.KeyInvalidDowngrade},

	{content.ErrUnknownSymbol, http.StatusNotFound, i18n.KeyUnknownSymbol},
	{content.ErrNoUser, http.StatusUnauthorized, i18n.KeyUnauthenticated},

	{market.ErrNoSymbols, http.StatusBadRequest, i18n.KeyNoSymbols},
	{market.ErrUnknownCategory, http.StatusBadRequest, i18n.KeyUnknownCategory},

	{autotrader.ErrNotEntitled, http.StatusForbidden, i18n.KeyPromptUpgradeUltimate},
	{autotrader.ErrInvalidRisk, http.StatusBadRequest, i18n.KeyInvalidRequest},
	{autotrader.ErrInvalidAssetMix, http.StatusBadRequest, i18n.KeyInvalidRequest},
}

// abort writes the error response for err and stops the handler chain.
// Unmapped errors are logged and answered with a generic 500.
func (s *Server) abort(c *gin.Context, err error) {
	_ = c.Error(err)

	if errors.Is(err, autotrader.ErrInvalidBudget) {
		lo, hi := s.deps.Trader.BudgetBounds()
		tag := lang(c)
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error:   i18n.KeyInvalidBudget,
			Message: s.deps.Localizer.T(tag, i18n.KeyInvalidBudget, s.deps.Localizer.FormatPrice(tag, lo), s.deps.Localizer.FormatPrice(tag, hi)),
		})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.AbortWithStatusJSON(m.status, s.errorBody(c, m.key))
			return
		}
	}

	s.logger.Error("Unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, s.errorBody(c, i18n.KeyInternal))
}

// deny answers a gate decision that did not allow the feature.
func (s *Server) deny(c *gin.Context, d entitlement.Decision) {
	status := http.StatusForbidden
	if d.Prompt == entitlement.PromptSignIn {
		status = http.StatusUnauthorized
	}
	c.AbortWithStatusJSON(status, s.errorBody(c, d.Prompt))
}

func (s *Server) errorBody(c *gin.Context, key string) errorResponse {
	return errorResponse{Error: key, Message: s.deps.Localizer.T(lang(c), key)}
}
