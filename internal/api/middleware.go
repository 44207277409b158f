package api

import (
	"net/http"
	"strings"
	"time"

	"borsa-dashboard-go/internal/auth"
	"borsa-dashboard-go/internal/entitlement"
	"borsa-dashboard-go/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	ctxAccount = "account"
	ctxToken   = "token"
	ctxLang    = "lang"
)

// accessLog writes one line per request.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Error("Request failed", fields...)
			return
		}
		s.logger.Debug("Request", fields...)
	}
}

// cors allows the configured origins. "*" allows any origin.
func cors(allowed []string) gin.HandlerFunc {
	allowAll := false
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		set[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowAll || set[origin]) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// language resolves the response language from ?lang= or Accept-Language.
func (s *Server) language() gin.HandlerFunc {
	return func(c *gin.Context) {
		accept := c.Query("lang")
		if accept == "" {
			accept = c.GetHeader("Accept-Language")
		}
		c.Set(ctxLang, s.deps.Localizer.Match(accept))
		c.Next()
	}
}

// authenticate resolves a bearer token when one is sent. Requests without a
// token continue anonymously; an invalid token is rejected.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.abort(c, auth.ErrUnauthenticated)
			return
		}

		acc, err := s.deps.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.abort(c, err)
			return
		}
		c.Set(ctxAccount, acc)
		c.Set(ctxToken, token)
		c.Next()
	}
}

// requireAuth rejects anonymous requests.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if account(c) == nil {
			s.abort(c, auth.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

// requireAdmin rejects non-admin accounts. The workflow checks again inside
// its transactions.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if acc := account(c); acc == nil || !acc.IsAdmin {
			s.abort(c, errForbidden)
			return
		}
		c.Next()
	}
}

func account(c *gin.Context) *models.Account {
	v, ok := c.Get(ctxAccount)
	if !ok {
		return nil
	}
	acc, _ := v.(*models.Account)
	return acc
}

func lang(c *gin.Context) language.Tag {
	if v, ok := c.Get(ctxLang); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return language.English
}

func (s *Server) viewer(c *gin.Context) entitlement.Viewer {
	return entitlement.ViewerOf(account(c), s.now())
}
