package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const (
	ClientCookie = "iyc_client"
	ClientIDKey  = "clientID"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// ClientID شناسه‌ی مرورگر را از کوکی می‌خواند یا یک شناسه‌ی جدید می‌سازد
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(ClientCookie)
		if err != nil || uuid.FromStringOrNil(id) == uuid.Nil {
			id = uuid.Must(uuid.NewV4()).String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientCookie, id, clientCookieMaxAge, "/", "", false, true)
		}
		c.Set(ClientIDKey, id)
		c.Next()
	}
}

// ClientIDFrom returns the id stored by ClientID, or "".
func ClientIDFrom(c *gin.Context) string {
	return c.GetString(ClientIDKey)
}
