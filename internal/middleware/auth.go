package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/services"
)

// Context keys set by RequireAuth.
const (
	CtxUsuarioID = "usuario_id"
	CtxRol       = "rol"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log.With("middleware", "AuthMiddleware"),
		authService: authService,
	}
}

// RequireAuth accepts the access token from the Authorization header or,
// for the browser flows, from the access_token cookie.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no autenticado"})
			return
		}

		claims, err := am.authService.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token inválido"})
			return
		}

		c.Set(CtxUsuarioID, claims.UsuarioID)
		c.Set(CtxRol, claims.Rol)
		c.Next()
	}
}

// RequireRol gates a route to the given roles. It assumes RequireAuth ran
// first.
func (am *AuthMiddleware) RequireRol(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rol := c.GetString(CtxRol)
		for _, r := range roles {
			if rol == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "acceso restringido"})
	}
}

// UsuarioID reads the authenticated user id from the gin context.
func UsuarioID(c *gin.Context) uint {
	if v, ok := c.Get(CtxUsuarioID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
