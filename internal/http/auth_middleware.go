package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authSubjectKey = "auth_subject"

// AuthMiddleware valida el bearer token emitido por el autorizador upstream
// y guarda el subject verificado en el contexto. Este servicio no emite
// tokens; solo consume los ya verificados.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authorizer not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(header[len("Bearer "):])
		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(authSubjectKey, claims.Subject)
		c.Next()
	}
}

// GetAuthSubject obtiene el subject verificado desde el contexto.
func GetAuthSubject(c *gin.Context) (string, bool) {
	val, ok := c.Get(authSubjectKey)
	if !ok {
		return "", false
	}
	subject, ok := val.(string)
	return subject, ok
}
